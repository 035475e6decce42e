package logic

import (
	"errors"
	"time"

	"github.com/blues/fes/internal/clock"
	"github.com/blues/fes/internal/model"
	"gorm.io/gorm"
)

// CreateCampaignRequest 创建活动请求
type CreateCampaignRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Goal        int64  `json:"goal"`
	MinDonation int64  `json:"min_donation"`
	Duration    int64  `json:"duration_seconds"`
	Beneficiary string `json:"beneficiary"`
	Image       string `json:"image"`
}

// CampaignRegistry 活动登记簿
// 持有全部活动，顺序分配编号，保存不可变条款与可变的结算状态
type CampaignRegistry struct {
	db    *gorm.DB
	clock clock.Clock
}

// NewCampaignRegistry 创建活动登记簿
func NewCampaignRegistry(db *gorm.DB, clk clock.Clock) *CampaignRegistry {
	return &CampaignRegistry{db: db, clock: clk}
}

// Create 创建活动，返回顺序分配的活动编号
func (r *CampaignRegistry) Create(req *CreateCampaignRequest) (int64, error) {
	if err := validateCampaignRequest(req); err != nil {
		return 0, err
	}

	now := r.clock.Now()

	var campaignId int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		// 下一个编号 = 已有活动数，活动永不删除，编号永不复用
		var count int64
		if err := tx.Model(&model.CampaignModel{}).Count(&count).Error; err != nil {
			return err
		}

		campaign := model.CampaignModel{
			CampaignId:     count,
			Name:           req.Name,
			Description:    req.Description,
			Image:          req.Image,
			Beneficiary:    req.Beneficiary,
			Goal:           req.Goal,
			MinDonation:    req.MinDonation,
			Deadline:       now.Add(time.Duration(req.Duration) * time.Second),
			TotalCollected: 0,
			Withdrawn:      false,
		}
		if err := tx.Create(&campaign).Error; err != nil {
			return err
		}

		campaignId = campaign.CampaignId
		return nil
	})
	if err != nil {
		return 0, err
	}

	return campaignId, nil
}

// Get 获取活动快照，只读
func (r *CampaignRegistry) Get(campaignId int64) (*model.CampaignModel, error) {
	return getCampaign(r.db, campaignId)
}

// Count 已创建的活动总数
func (r *CampaignRegistry) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.CampaignModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// List 获取全部活动
func (r *CampaignRegistry) List() ([]model.CampaignModel, error) {
	var campaigns []model.CampaignModel
	if err := r.db.Order("campaign_id ASC").Find(&campaigns).Error; err != nil {
		return nil, err
	}
	return campaigns, nil
}

// getCampaign 按活动编号查询，供登记簿与生命周期引擎共用
func getCampaign(db *gorm.DB, campaignId int64) (*model.CampaignModel, error) {
	var campaign model.CampaignModel
	if err := db.Where("campaign_id = ?", campaignId).First(&campaign).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	return &campaign, nil
}

// validateCampaignRequest 校验创建请求
func validateCampaignRequest(req *CreateCampaignRequest) error {
	if req.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if req.Description == "" {
		return &ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if req.Beneficiary == "" {
		return &ValidationError{Field: "beneficiary", Reason: "must not be empty"}
	}
	if req.Goal <= 0 {
		return &ValidationError{Field: "goal", Reason: "must be positive"}
	}
	if req.MinDonation <= 0 {
		return &ValidationError{Field: "min_donation", Reason: "must be positive"}
	}
	if req.Duration <= 0 {
		return &ValidationError{Field: "duration_seconds", Reason: "must be positive"}
	}
	return nil
}
