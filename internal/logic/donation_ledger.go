package logic

import (
	"errors"

	"github.com/blues/fes/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DonationLedger 捐款台账
// 按 (活动, 捐款人) 记录累计捐款金额，退款时清零防止重复退款
type DonationLedger struct {
	db *gorm.DB
}

// NewDonationLedger 创建捐款台账，db 可以是外层事务句柄
func NewDonationLedger(db *gorm.DB) *DonationLedger {
	return &DonationLedger{db: db}
}

// AmountOf 查询累计捐款金额，无记录时为 0
func (l *DonationLedger) AmountOf(campaignId int64, donor string) (int64, error) {
	var record model.DonationRecordModel
	err := l.db.Where("campaign_id = ? AND address = ?", campaignId, donor).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return record.Amount, nil
}

// Add 累加捐款金额，首次捐款时创建记录
func (l *DonationLedger) Add(campaignId int64, donor string, amount int64) error {
	return l.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "campaign_id"}, {Name: "address"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"amount": gorm.Expr("amount + ?", amount)}),
	}).Create(&model.DonationRecordModel{
		CampaignId: campaignId,
		Address:    donor,
		Amount:     amount,
	}).Error
}

// Clear 清零捐款记录（退款成功后调用）
func (l *DonationLedger) Clear(campaignId int64, donor string) error {
	return l.db.Model(&model.DonationRecordModel{}).
		Where("campaign_id = ? AND address = ?", campaignId, donor).
		Update("amount", 0).Error
}

// TotalOf 活动全部台账金额之和（校验 total_collected 不变式用）
func (l *DonationLedger) TotalOf(campaignId int64) (int64, error) {
	var total int64
	err := l.db.Model(&model.DonationRecordModel{}).
		Where("campaign_id = ?", campaignId).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
