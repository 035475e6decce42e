package notify

import (
	"testing"
	"time"

	"github.com/blues/fes/internal/database"
	"github.com/blues/fes/internal/model"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		NamingStrategy: &schema.NamingStrategy{
			SingularTable: true,
		},
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func TestDispatcherPersistsEvents(t *testing.T) {
	db := newTestDB(t)
	dispatcher, err := NewDispatcher(db, nil)
	require.NoError(t, err)
	defer dispatcher.Release()

	dispatcher.Publish(0, model.EventDonation, "0xA11c", 20_000000)

	// 分发是异步的，轮询等待落库
	require.Eventually(t, func() bool {
		var count int64
		db.Model(&model.EventModel{}).Count(&count)
		return count == 1
	}, 2*time.Second, 10*time.Millisecond)

	var event model.EventModel
	require.NoError(t, db.First(&event).Error)
	assert.Equal(t, int64(0), event.CampaignId)
	assert.Equal(t, model.EventDonation, event.Kind)
	assert.Equal(t, "0xA11c", event.Actor)
	assert.Equal(t, int64(20_000000), event.Amount)
}

func TestDispatcherEventsQuery(t *testing.T) {
	db := newTestDB(t)
	dispatcher, err := NewDispatcher(db, nil)
	require.NoError(t, err)
	defer dispatcher.Release()

	for i := 0; i < 3; i++ {
		dispatcher.Publish(7, model.EventDonation, "0xA11c", int64(i+1))
	}
	dispatcher.Publish(8, model.EventWithdrawal, "0xB0b", 100)

	require.Eventually(t, func() bool {
		var count int64
		db.Model(&model.EventModel{}).Count(&count)
		return count == 4
	}, 2*time.Second, 10*time.Millisecond)

	events, err := dispatcher.Events(7, 10)
	require.NoError(t, err)
	require.Len(t, events, 3)
	for _, event := range events {
		assert.Equal(t, int64(7), event.CampaignId)
	}
}
