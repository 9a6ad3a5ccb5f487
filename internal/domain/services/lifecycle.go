package services

import (
	"context"
	"errors"

	"flatmoney-service/internal/domain/models"
	"flatmoney-service/internal/domain/repositories"
	"flatmoney-service/internal/error/apperr"
	"flatmoney-service/internal/infrastructure/metrics"
)

// restoreOrCreate 按 (父ID, 自然键) 创建实体
//
//	不存在     -> 插入新行
//	已删除     -> 用新数据整体覆盖原行并恢复，保留原 id
//	未删除     -> Conflict，不做任何修改
//
// 并发插入同一键时由存储层的唯一约束返回 Conflict。
func restoreOrCreate[T models.Tombstoned, K comparable](
	ctx context.Context,
	store repositories.TombstoneStore[T, K],
	entity string,
	parentID uint,
	key K,
	input *T,
) (result *T, restored bool, err error) {
	existing, err := store.FindByKey(ctx, parentID, key)
	if err != nil {
		return nil, false, err
	}

	if existing == nil {
		if err := store.Insert(ctx, input); err != nil {
			return nil, false, err
		}
		metrics.RecordLifecycle(entity, "created")
		return input, false, nil
	}

	if !(*existing).Deleted() {
		return nil, false, apperr.Conflict(entity + " with this number already exists")
	}

	result, err = store.Restore(ctx, (*existing).GetID(), input)
	if errors.Is(err, apperr.ErrNotFound) {
		// 其他请求已先一步恢复了该行
		return nil, false, apperr.Conflict(entity + " with this number already exists")
	}
	if err != nil {
		return nil, false, err
	}
	metrics.RecordLifecycle(entity, "restored")
	return result, true, nil
}
