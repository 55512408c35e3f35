package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/peppone-choi/opensamguk-sub002/internal/shared/logs"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/serverconfig"
)

var gormDB *gorm.DB

// Open 建立 MySQL 连接池。进程启动时调用一次。
func Open() error {
	c := serverconfig.Conf.MySQL
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.Charset)

	var err error
	gormDB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logs.NewGormLogger(),
	})
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(c.MaxConn)
	sqlDB.SetMaxIdleConns(c.MaxIdle)

	logs.Info("open db success")
	return nil
}

func DB() *gorm.DB {
	return gormDB
}
