package store

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/xiebiao/masses/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 通过database.driver选择方言: mysql(服务端部署) / postgres / sqlite(单机部署与测试)
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. SQL日志统一走zap
// 4. TranslateError让各驱动的唯一键/外键错误统一为gorm.ErrDuplicatedKey等
func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	return Open(cfg.Database, log)
}

// Open 按数据库配置建立连接(测试直接使用)
func Open(dbCfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(dbCfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         NewGormLogger(log, dbCfg.SlowThreshold),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	if dbCfg.Driver == config.DriverSQLite {
		// SQLite只允许一个写者,单连接让事务天然串行;
		// 内存库的数据随连接存在,连接不能被回收
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	} else {
		sqlDB.SetMaxOpenConns(dbCfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(dbCfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(dbCfg.ConnMaxLifetime)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Info("数据库连接成功", zap.String("driver", dbCfg.Driver))

	if dbCfg.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
	}

	return db, nil
}

func dialectorFor(dbCfg config.DatabaseConfig) (gorm.Dialector, error) {
	dsn := dbCfg.BuildDSN()
	switch dbCfg.Driver {
	case config.DriverMySQL:
		return mysql.Open(dsn), nil
	case config.DriverPostgres:
		return postgres.Open(dsn), nil
	case config.DriverSQLite:
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %q", dbCfg.Driver)
	}
}

// AutoMigrate 自动迁移表结构
// 外键与检查约束由模型tag声明,建表时一并创建
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&ProductModel{},
		&ClientModel{},
		&TransactionModel{},
		&ItemModel{},
		&PaymentModel{},
		&ProductionModel{},
	)
}
