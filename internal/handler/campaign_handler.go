package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/fes/internal/logic"
	"github.com/blues/fes/internal/notify"
	"github.com/gin-gonic/gin"
)

// CampaignHandler 活动接口
type CampaignHandler struct {
	lifecycle  *logic.Lifecycle
	dispatcher *notify.Dispatcher
}

// NewCampaignHandler 创建活动接口
func NewCampaignHandler(lifecycle *logic.Lifecycle, dispatcher *notify.Dispatcher) *CampaignHandler {
	return &CampaignHandler{
		lifecycle:  lifecycle,
		dispatcher: dispatcher,
	}
}

// CreateCampaign 创建活动
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var req logic.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	campaignId, err := h.lifecycle.CreateCampaign(&req)
	if err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "活动创建成功", gin.H{
		"campaign_id": campaignId,
	})
}

// GetCampaigns 获取活动列表
func (h *CampaignHandler) GetCampaigns(c *gin.Context) {
	campaigns, err := h.lifecycle.Registry().List()
	if err != nil {
		FailWithError(c, err)
		return
	}

	resp := make([]CampaignResponse, 0, len(campaigns))
	for i := range campaigns {
		_, status, err := h.lifecycle.GetCampaign(campaigns[i].CampaignId)
		if err != nil {
			FailWithError(c, err)
			return
		}
		resp = append(resp, newCampaignResponse(&campaigns[i], status))
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"campaigns": resp,
		"total":     len(resp),
	})
}

// GetCampaign 获取活动详情
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	campaignId, ok := h.campaignId(c)
	if !ok {
		return
	}

	campaign, status, err := h.lifecycle.GetCampaign(campaignId)
	if err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", newCampaignResponse(campaign, status))
}

// GetCampaignCount 获取活动总数
func (h *CampaignHandler) GetCampaignCount(c *gin.Context) {
	count, err := h.lifecycle.Registry().Count()
	if err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"count": count})
}

// Donate 捐款
func (h *CampaignHandler) Donate(c *gin.Context) {
	campaignId, ok := h.campaignId(c)
	if !ok {
		return
	}

	var req DonateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.lifecycle.Donate(c.Request.Context(), campaignId, req.Address, req.Amount); err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "捐款成功", gin.H{
		"campaign_id": campaignId,
		"amount":      req.Amount,
	})
}

// GetDonation 查询捐款人台账余额
func (h *CampaignHandler) GetDonation(c *gin.Context) {
	campaignId, ok := h.campaignId(c)
	if !ok {
		return
	}

	address := c.Param("address")
	amount, err := h.lifecycle.DonationOf(campaignId, address)
	if err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"campaign_id": campaignId,
		"address":     address,
		"amount":      amount,
	})
}

// Withdraw 受益人提取资金
func (h *CampaignHandler) Withdraw(c *gin.Context) {
	campaignId, ok := h.campaignId(c)
	if !ok {
		return
	}

	var req ActorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.lifecycle.WithdrawFunds(c.Request.Context(), campaignId, req.Address); err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "资金提取成功", gin.H{
		"campaign_id": campaignId,
	})
}

// Refund 捐款人退款
func (h *CampaignHandler) Refund(c *gin.Context) {
	campaignId, ok := h.campaignId(c)
	if !ok {
		return
	}

	var req ActorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := h.lifecycle.Refund(c.Request.Context(), campaignId, req.Address)
	if err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "退款成功", gin.H{
		"campaign_id": campaignId,
		"amount":      amount,
	})
}

// GetEvents 获取活动事件记录
func (h *CampaignHandler) GetEvents(c *gin.Context) {
	campaignId, ok := h.campaignId(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	events, err := h.dispatcher.Events(campaignId, limit)
	if err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"campaign_id": campaignId,
		"events":      events,
	})
}

// campaignId 解析路径中的活动编号
func (h *CampaignHandler) campaignId(c *gin.Context) (int64, bool) {
	campaignId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || campaignId < 0 {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动编号")
		return 0, false
	}
	return campaignId, true
}
