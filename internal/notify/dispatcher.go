package notify

import (
	"encoding/json"

	"github.com/blues/fes/internal/logger"
	"github.com/blues/fes/internal/model"
	"github.com/blues/fes/internal/ws"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

// Dispatcher 结算事件分发器
// 成功的变更操作都会经这里落一条事件记录并广播给在线客户端。
// 分发在协程池中异步执行，不阻塞结算路径。
type Dispatcher struct {
	db   *gorm.DB
	hub  *ws.Hub
	pool *ants.Pool
}

// NewDispatcher 创建事件分发器，hub 可以为 nil
func NewDispatcher(db *gorm.DB, hub *ws.Hub) (*Dispatcher, error) {
	pool, err := ants.NewPool(8, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}
	return &Dispatcher{db: db, hub: hub, pool: pool}, nil
}

// Publish 实现 logic.Notifier
func (d *Dispatcher) Publish(campaignId int64, kind, actor string, amount int64) {
	task := func() {
		d.dispatch(campaignId, kind, actor, amount)
	}
	if err := d.pool.Submit(task); err != nil {
		// 协程池满时退化为同步执行，事件不能丢
		task()
	}
}

// dispatch 落库并广播
func (d *Dispatcher) dispatch(campaignId int64, kind, actor string, amount int64) {
	event := model.EventModel{
		CampaignId: campaignId,
		Kind:       kind,
		Actor:      actor,
		Amount:     amount,
	}
	if err := d.db.Create(&event).Error; err != nil {
		logger.Error("Failed to record %s event for campaign %d: %v", kind, campaignId, err)
		return
	}

	if d.hub != nil {
		payload, err := json.Marshal(event)
		if err != nil {
			logger.Error("Failed to marshal event %d: %v", event.Id, err)
			return
		}
		d.hub.Broadcast(payload)
	}
}

// Events 查询活动的事件记录，按时间倒序
func (d *Dispatcher) Events(campaignId int64, limit int) ([]model.EventModel, error) {
	if limit <= 0 {
		limit = 50
	}
	var events []model.EventModel
	err := d.db.Where("campaign_id = ?", campaignId).
		Order("id DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

// Release 释放协程池
func (d *Dispatcher) Release() {
	d.pool.Release()
}
