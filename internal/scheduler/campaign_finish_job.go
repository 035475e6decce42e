package scheduler

import (
	"time"

	"github.com/blues/fes/internal/clock"
	"github.com/blues/fes/internal/config"
	"github.com/blues/fes/internal/logger"
	"github.com/blues/fes/internal/logic"
	"github.com/blues/fes/internal/model"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// CampaignFinishJob 活动收尾任务
// 扫描已过截止时间的活动，对尚未宣告结果的活动发出成功/失败事件。
// 状态本身始终由截止时间和金额推导，这里只补事件，不改活动行。
type CampaignFinishJob struct {
	db       *gorm.DB
	clock    clock.Clock
	notifier logic.Notifier
	config   *config.Config
}

// NewCampaignFinishJob 创建活动收尾任务
func NewCampaignFinishJob(db *gorm.DB, clk clock.Clock, notifier logic.Notifier, cfg *config.Config) *CampaignFinishJob {
	return &CampaignFinishJob{
		db:       db,
		clock:    clk,
		notifier: notifier,
		config:   cfg,
	}
}

// GetName 获取任务名称
func (j *CampaignFinishJob) GetName() string {
	return "campaign_finish"
}

// GetSchedule 获取调度配置
func (j *CampaignFinishJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Scheduler.Interval) * time.Second)
}

// Execute 执行任务
func (j *CampaignFinishJob) Execute() {
	now := j.clock.Now()

	var campaigns []model.CampaignModel
	if err := j.db.Where("deadline < ?", now).Find(&campaigns).Error; err != nil {
		logger.Error("Failed to fetch ended campaigns: %v", err)
		return
	}

	finished := 0
	for _, campaign := range campaigns {
		// 已宣告过结果的活动跳过
		var count int64
		err := j.db.Model(&model.EventModel{}).
			Where("campaign_id = ? AND kind IN ?", campaign.CampaignId,
				[]string{model.EventCampaignSuccess, model.EventCampaignFailed}).
			Count(&count).Error
		if err != nil {
			logger.Error("Failed to check finish events for campaign %d: %v", campaign.CampaignId, err)
			continue
		}
		if count > 0 {
			continue
		}

		kind := model.EventCampaignFailed
		if campaign.TotalCollected >= campaign.Goal {
			kind = model.EventCampaignSuccess
		}
		if j.notifier != nil {
			j.notifier.Publish(campaign.CampaignId, kind, campaign.Beneficiary, campaign.TotalCollected)
		}

		logger.Info("Campaign %d finished with %s, collected=%d, goal=%d",
			campaign.CampaignId, kind, campaign.TotalCollected, campaign.Goal)
		finished++
	}

	if finished > 0 {
		logger.Info("Campaign finish sweep completed, announced %d campaigns", finished)
	}
}
