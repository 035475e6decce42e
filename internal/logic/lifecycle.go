package logic

import (
	"context"
	"fmt"
	"sync"

	"github.com/blues/fes/internal/clock"
	"github.com/blues/fes/internal/logger"
	"github.com/blues/fes/internal/model"
	"github.com/blues/fes/internal/token"
	"gorm.io/gorm"
)

// Notifier 结算事件通知，供展示/索引方消费
// 通知在状态提交之后发出，传输方式不属于核心职责
type Notifier interface {
	Publish(campaignId int64, kind, actor string, amount int64)
}

// Lifecycle 活动生命周期引擎
// 把登记簿、台账和资产网关组合成受守卫保护的原子操作。
// 所有变更操作经互斥锁串行执行，配合整操作事务保证全有或全无：
// 任何一步失败，登记簿和台账都保持调用前的状态。
type Lifecycle struct {
	db       *gorm.DB
	clock    clock.Clock
	gateway  token.Gateway
	custody  string
	registry *CampaignRegistry
	notifier Notifier
	mu       sync.Mutex
}

// NewLifecycle 创建生命周期引擎
func NewLifecycle(db *gorm.DB, clk clock.Clock, gateway token.Gateway, custody string, notifier Notifier) *Lifecycle {
	return &Lifecycle{
		db:       db,
		clock:    clk,
		gateway:  gateway,
		custody:  custody,
		registry: NewCampaignRegistry(db, clk),
		notifier: notifier,
	}
}

// Registry 活动登记簿
func (l *Lifecycle) Registry() *CampaignRegistry {
	return l.registry
}

// CreateCampaign 创建活动，返回活动编号
func (l *Lifecycle) CreateCampaign(req *CreateCampaignRequest) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	campaignId, err := l.registry.Create(req)
	if err != nil {
		return 0, err
	}

	logger.Info("Campaign %d created, goal=%d, beneficiary=%s", campaignId, req.Goal, req.Beneficiary)
	l.publish(campaignId, model.EventCampaignCreated, req.Beneficiary, req.Goal)
	return campaignId, nil
}

// Donate 捐款
// 守卫顺序：活动存在、未过截止时间、不低于最低捐款额。
// 守卫全部通过后才调用网关入金，入金失败则全部回滚。
func (l *Lifecycle) Donate(ctx context.Context, campaignId int64, donor string, amount int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	// 时间在守卫求值时读取一次，不由调用方提供
	now := l.clock.Now()

	err := l.db.Transaction(func(tx *gorm.DB) error {
		campaign, err := getCampaign(tx, campaignId)
		if err != nil {
			return err
		}
		if now.After(campaign.Deadline) {
			return ErrDeadlinePassed
		}
		if amount < campaign.MinDonation {
			return ErrBelowMinimum
		}

		if err := l.gateway.TransferInto(ctx, donor, l.custody, amount); err != nil {
			return fmt.Errorf("%w: %v", ErrTransferFailed, err)
		}

		if err := NewDonationLedger(tx).Add(campaignId, donor, amount); err != nil {
			return err
		}
		return tx.Model(&model.CampaignModel{}).
			Where("campaign_id = ?", campaignId).
			Update("total_collected", gorm.Expr("total_collected + ?", amount)).Error
	})
	if err != nil {
		return err
	}

	logger.Info("Donation of %d from %s to campaign %d", amount, donor, campaignId)
	l.publish(campaignId, model.EventDonation, donor, amount)
	return nil
}

// WithdrawFunds 受益人提取资金
// 仅当截止时间已过、达到目标金额且尚未提取时允许，成功后 withdrawn 置位。
// 出金失败时 withdrawn 保持 false，可以重试。
func (l *Lifecycle) WithdrawFunds(ctx context.Context, campaignId int64, caller string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()

	var amount int64
	err := l.db.Transaction(func(tx *gorm.DB) error {
		campaign, err := getCampaign(tx, campaignId)
		if err != nil {
			return err
		}
		if caller != campaign.Beneficiary {
			return ErrUnauthorized
		}
		if !now.After(campaign.Deadline) {
			return ErrTooEarly
		}
		if campaign.TotalCollected < campaign.Goal {
			return ErrGoalNotMet
		}
		if campaign.Withdrawn {
			return ErrAlreadyWithdrawn
		}

		amount = campaign.TotalCollected
		if err := l.gateway.TransferOut(ctx, l.custody, campaign.Beneficiary, amount); err != nil {
			return fmt.Errorf("%w: %v", ErrTransferFailed, err)
		}

		return tx.Model(&model.CampaignModel{}).
			Where("campaign_id = ?", campaignId).
			Update("withdrawn", true).Error
	})
	if err != nil {
		return err
	}

	logger.Info("Campaign %d funds withdrawn, amount=%d, beneficiary=%s", campaignId, amount, caller)
	l.publish(campaignId, model.EventWithdrawal, caller, amount)
	return nil
}

// Refund 捐款人退款
// 仅当截止时间已过、未达目标且捐款人有未结清余额时允许。
// 退款成功后台账清零、total_collected 扣减，使其始终等于仍在托管中的资金。
// 出金失败时台账保持不变，捐款人可以重试。
func (l *Lifecycle) Refund(ctx context.Context, campaignId int64, donor string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()

	var amount int64
	err := l.db.Transaction(func(tx *gorm.DB) error {
		campaign, err := getCampaign(tx, campaignId)
		if err != nil {
			return err
		}
		if !now.After(campaign.Deadline) {
			return ErrTooEarly
		}
		if campaign.TotalCollected >= campaign.Goal {
			// 成功的活动只能走提取路径
			return ErrGoalMet
		}

		ledger := NewDonationLedger(tx)
		amount, err = ledger.AmountOf(campaignId, donor)
		if err != nil {
			return err
		}
		if amount <= 0 {
			return ErrNothingToRefund
		}

		if err := l.gateway.TransferOut(ctx, l.custody, donor, amount); err != nil {
			return fmt.Errorf("%w: %v", ErrTransferFailed, err)
		}

		if err := ledger.Clear(campaignId, donor); err != nil {
			return err
		}
		return tx.Model(&model.CampaignModel{}).
			Where("campaign_id = ?", campaignId).
			Update("total_collected", gorm.Expr("total_collected - ?", amount)).Error
	})
	if err != nil {
		return 0, err
	}

	logger.Info("Refund of %d to %s from campaign %d", amount, donor, campaignId)
	l.publish(campaignId, model.EventRefund, donor, amount)
	return amount, nil
}

// GetCampaign 获取活动快照及推导状态
func (l *Lifecycle) GetCampaign(campaignId int64) (*model.CampaignModel, model.CampaignStatus, error) {
	campaign, err := l.registry.Get(campaignId)
	if err != nil {
		return nil, "", err
	}
	return campaign, campaign.StatusAt(l.clock.Now()), nil
}

// DonationOf 查询捐款人在活动中的台账余额
func (l *Lifecycle) DonationOf(campaignId int64, donor string) (int64, error) {
	if _, err := l.registry.Get(campaignId); err != nil {
		return 0, err
	}
	return NewDonationLedger(l.db).AmountOf(campaignId, donor)
}

// publish 发出结算事件通知
func (l *Lifecycle) publish(campaignId int64, kind, actor string, amount int64) {
	if l.notifier != nil {
		l.notifier.Publish(campaignId, kind, actor, amount)
	}
}
