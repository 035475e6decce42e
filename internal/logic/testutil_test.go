package logic

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/blues/fes/internal/database"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

const (
	testCustody     = "0x00000000000000000000000000000000000C0de5"
	testBeneficiary = "0x0000000000000000000000000000000000000B0b"
	testDonor       = "0x000000000000000000000000000000000000A11c"
	testOther       = "0x000000000000000000000000000000000000Ca01"
)

// newTestDB 内存SQLite数据库，单连接避免 :memory: 被连接池拆成多个库
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

// fakeClock 可控时钟
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// transferCall 网关调用记录
type transferCall struct {
	from   string
	to     string
	amount int64
}

// fakeGateway 可注入失败的资产网关
type fakeGateway struct {
	mu        sync.Mutex
	fail      bool
	intoCalls []transferCall
	outCalls  []transferCall
}

func (g *fakeGateway) TransferInto(_ context.Context, from, to string, amount int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fail {
		return errors.New("gateway unavailable")
	}
	g.intoCalls = append(g.intoCalls, transferCall{from: from, to: to, amount: amount})
	return nil
}

func (g *fakeGateway) TransferOut(_ context.Context, from, to string, amount int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fail {
		return errors.New("gateway unavailable")
	}
	g.outCalls = append(g.outCalls, transferCall{from: from, to: to, amount: amount})
	return nil
}

func (g *fakeGateway) setFail(fail bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fail = fail
}

// recordedEvent 通知记录
type recordedEvent struct {
	campaignId int64
	kind       string
	actor      string
	amount     int64
}

// recordingNotifier 记录所有通知
type recordingNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (n *recordingNotifier) Publish(campaignId int64, kind, actor string, amount int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedEvent{
		campaignId: campaignId,
		kind:       kind,
		actor:      actor,
		amount:     amount,
	})
}

// newTestLifecycle 组装引擎及其假协作方
func newTestLifecycle(t *testing.T) (*Lifecycle, *fakeClock, *fakeGateway) {
	t.Helper()
	db := newTestDB(t)
	clk := newFakeClock()
	gw := &fakeGateway{}
	return NewLifecycle(db, clk, gw, testCustody, nil), clk, gw
}

// validRequest 合法的创建请求，条款与结算合约测试用例一致
func validRequest() *CreateCampaignRequest {
	return &CreateCampaignRequest{
		Name:        "Clean Water",
		Description: "Provide clean water",
		Goal:        50_000000,
		MinDonation: 10_000000,
		Duration:    5,
		Beneficiary: testBeneficiary,
		Image:       "",
	}
}
