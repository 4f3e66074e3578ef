package main

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"aidat/models"
	"aidat/pkg/ledger"

	"github.com/gin-gonic/gin"
)

const paymentsPerPage = 10

// paymentDateMode resolves how payment_date is chosen: "auto" stamps
// today on create and edit, "manual" honors the client-supplied date.
// Both behaviors existed in the original app, so the choice is explicit
// configuration rather than a guess.
func paymentDateMode() string {
	if v := os.Getenv("PAYMENT_DATE_MODE"); v == "manual" {
		return "manual"
	}
	return "auto"
}

func resolvePaymentDate(clientDate string) (time.Time, error) {
	if paymentDateMode() == "manual" && clientDate != "" {
		return time.Parse("2006-01-02", clientDate)
	}
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
}

type paymentRequest struct {
	UserID       uint   `json:"user_id" binding:"required"`
	Amount       *int64 `json:"amount" binding:"required,gte=0"` // kuruş
	PaymentMonth string `json:"payment_month" binding:"required"`
	PaymentDate  string `json:"payment_date"` // honored only in manual mode
}

// listPaymentsHandler returns payments newest first, with equality filters
// and fixed-size pagination. Non-admins only ever see their own rows; the
// member filter is an admin capability.
func listPaymentsHandler(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "member not found"})
		return
	}
	q := db.WithContext(c.Request.Context()).Model(&models.Payment{})
	if !isAdmin(c) {
		q = q.Where("member_id = ?", member.ID)
	} else if v := c.Query("user_id"); v != "" {
		q = q.Where("member_id = ?", v)
	}
	if v := c.Query("date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date filter"})
			return
		}
		q = q.Where("payment_date = ?", t)
	}
	if v := c.Query("month"); v != "" {
		period, err := ledger.ParsePeriod(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month filter"})
			return
		}
		q = q.Where("payment_month = ?", period.FirstDay())
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	totalPages := int((total + paymentsPerPage - 1) / paymentsPerPage)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	var items []models.Payment
	err := q.Preload("Member").
		Order("payment_date desc, id desc").
		Offset((page - 1) * paymentsPerPage).
		Limit(paymentsPerPage).
		Find(&items).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items":       items,
		"page":        page,
		"total_pages": totalPages,
		"total":       total,
	})
}

func createPaymentHandler(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "member not found"})
		return
	}
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	period, err := ledger.ParsePeriod(req.PaymentMonth)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	paymentDate, err := resolvePaymentDate(req.PaymentDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment_date"})
		return
	}
	var payee models.Member
	if err := db.First(&payee, req.UserID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "member not found"})
		return
	}
	p := models.Payment{
		MemberID:     payee.ID,
		Amount:       *req.Amount,
		PaymentDate:  paymentDate,
		PaymentMonth: period.FirstDay(),
		CreatedByID:  member.ID,
	}
	if err := db.Create(&p).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": p.ID})
}

// updatePaymentHandler replaces every editable field; the date policy
// applies on edit too.
func updatePaymentHandler(c *gin.Context) {
	var p models.Payment
	if err := db.First(&p, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
		return
	}
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	period, err := ledger.ParsePeriod(req.PaymentMonth)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	paymentDate, err := resolvePaymentDate(req.PaymentDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment_date"})
		return
	}
	var payee models.Member
	if err := db.First(&payee, req.UserID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "member not found"})
		return
	}
	p.MemberID = payee.ID
	p.Amount = *req.Amount
	p.PaymentDate = paymentDate
	p.PaymentMonth = period.FirstDay()
	if err := db.Save(&p).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": p.ID})
}

// deletePaymentHandler removes a payment permanently; there is no
// soft-delete or audit trail for dues rows.
func deletePaymentHandler(c *gin.Context) {
	res := db.Delete(&models.Payment{}, c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment deleted"})
}
