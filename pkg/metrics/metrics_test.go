package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	before := getCounterValue(t, PaymentsRegisteredTotal)
	PaymentsRegisteredTotal.Inc()
	PaymentsRegisteredTotal.Inc()
	assert.Equal(t, before+2, getCounterValue(t, PaymentsRegisteredTotal))

	sale := prometheus.Labels{"kind": "V"}
	beforeSale := getCounterVecValue(t, TransactionsRegisteredTotal, sale)
	TransactionsRegisteredTotal.With(sale).Inc()
	assert.Equal(t, beforeSale+1, getCounterVecValue(t, TransactionsRegisteredTotal, sale))
}

func TestObserveOperation(t *testing.T) {
	ok := prometheus.Labels{"operation": "test_op", "result": ResultSuccess}
	failed := prometheus.Labels{"operation": "test_op", "result": ResultFailure}

	before := getHistogramVecCount(t, LedgerOperationDuration, ok)
	beforeFailed := getHistogramVecCount(t, LedgerOperationDuration, failed)

	ObserveOperation("test_op", time.Now().Add(-10*time.Millisecond), nil)
	ObserveOperation("test_op", time.Now(), errors.New("boom"))

	assert.Equal(t, before+1, getHistogramVecCount(t, LedgerOperationDuration, ok))
	assert.Equal(t, beforeFailed+1, getHistogramVecCount(t, LedgerOperationDuration, failed))
}

func TestGaugeVec(t *testing.T) {
	labels := prometheus.Labels{"name": "test"}
	CircuitBreakerState.With(labels).Set(1)
	assert.Equal(t, float64(1), getGaugeVecValue(t, CircuitBreakerState, labels))
}

// 辅助函数：获取Counter值
func getCounterValue(t *testing.T, counter prometheus.Counter) float64 {
	var metric dto.Metric
	require.NoError(t, counter.Write(&metric), "读取Counter值失败")
	return metric.Counter.GetValue()
}

// 辅助函数：获取CounterVec值
func getCounterVecValue(t *testing.T, counterVec *prometheus.CounterVec, labels prometheus.Labels) float64 {
	return getCounterValue(t, counterVec.With(labels))
}

// 辅助函数：获取GaugeVec值
func getGaugeVecValue(t *testing.T, gaugeVec *prometheus.GaugeVec, labels prometheus.Labels) float64 {
	var metric dto.Metric
	require.NoError(t, gaugeVec.With(labels).Write(&metric), "读取GaugeVec值失败")
	return metric.Gauge.GetValue()
}

// 辅助函数：获取HistogramVec观测次数
func getHistogramVecCount(t *testing.T, histogramVec *prometheus.HistogramVec, labels prometheus.Labels) uint64 {
	var metric dto.Metric
	histogram := histogramVec.With(labels)
	require.NoError(t, histogram.(prometheus.Histogram).Write(&metric), "读取HistogramVec值失败")
	return metric.Histogram.GetSampleCount()
}
