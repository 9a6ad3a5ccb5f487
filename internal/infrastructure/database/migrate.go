package database

import (
	"fmt"

	"gorm.io/gorm"

	"flatmoney-service/internal/domain/models"
	Logger "flatmoney-service/pkg/logger"
)

// 迁移顺序即依赖顺序，drop 时逆序删除
var schema = []interface{}{
	&models.User{},
	&models.Building{},
	&models.BuildingAccess{},
	&models.Floor{},
	&models.Apartment{},
	&models.Deposit{},
	&models.Obligation{},
	&models.ExpenseType{},
	&models.BuildingExpense{},
}

// Migrate 按模式迁移数据库："drop" 删除重建所有表，其余按 AutoMigrate 只增不删
func Migrate(db *gorm.DB, mode string) error {
	if mode == "drop" {
		Logger.Warning("在drop模式下运行，将删除并重建所有表")
		if err := dropTables(db); err != nil {
			return err
		}
	} else {
		Logger.Info("在标准模式下运行，将只添加新列和新表")
	}

	if err := db.AutoMigrate(schema...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	Logger.Info("数据库迁移完成")
	return nil
}

func dropTables(db *gorm.DB) error {
	migrator := db.Migrator()
	for i := len(schema) - 1; i >= 0; i-- {
		if err := migrator.DropTable(schema[i]); err != nil {
			return fmt.Errorf("drop table %T: %w", schema[i], err)
		}
	}
	return nil
}
