package main

import (
	"net/http"
	"time"

	"aidat/models"
	"aidat/pkg/ledger"

	"github.com/gin-gonic/gin"
)

// listMembersHandler returns every member ordered by name, with the admin
// flag resolved from the linked user's role.
func listMembersHandler(c *gin.Context) {
	var members []models.Member
	err := db.WithContext(c.Request.Context()).
		Preload("User.Role").
		Order("full_name").
		Find(&members).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	for i := range members {
		if members[i].User != nil {
			members[i].IsAdmin = members[i].User.IsAdmin()
		}
	}
	c.JSON(http.StatusOK, members)
}

// memberMatrixHandler returns the two-year payment grid plus the all-time
// total for one member. Admins may view anyone; members only themselves.
func memberMatrixHandler(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "member not found"})
		return
	}
	var target models.Member
	if err := db.First(&target, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
		return
	}
	if !isAdmin(c) && target.ID != member.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	renderMatrix(c, &target)
}

// myDuesHandler is the member-facing dues history view.
func myDuesHandler(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "member not found"})
		return
	}
	renderMatrix(c, member)
}

func renderMatrix(c *gin.Context, target *models.Member) {
	var rows []models.Payment
	err := db.WithContext(c.Request.Context()).
		Where("member_id = ?", target.ID).
		Order("payment_month desc").
		Find(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	payments := make([]ledger.Payment, 0, len(rows))
	for _, r := range rows {
		payments = append(payments, ledger.Payment{MemberID: r.MemberID, Amount: r.Amount, Month: r.PaymentMonth})
	}
	c.JSON(http.StatusOK, gin.H{
		"member":     target,
		"total_paid": ledger.TotalPaid(payments),
		"years":      ledger.Matrix(payments, time.Now().Year()),
	})
}
