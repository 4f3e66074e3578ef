package main

import (
	"net/http"
	"strconv"
	"time"

	"aidat/models"
	"aidat/pkg/ledger"

	"github.com/gin-gonic/gin"
)

func selectedYear(c *gin.Context) (int, bool) {
	y := c.DefaultQuery("year", strconv.Itoa(time.Now().Year()))
	year, err := strconv.Atoi(y)
	if err != nil || year < 1970 || year > 9999 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return 0, false
	}
	return year, true
}

// fetchLedger loads all payments and expenses as boundary records. The
// full set is needed because carry-over reaches back to the beginning of
// the ledger; the tables stay small (tens to low thousands of rows).
func fetchLedger(c *gin.Context) ([]ledger.Payment, []ledger.Expense, bool) {
	ctx := c.Request.Context()
	var paymentRows []models.Payment
	if err := db.WithContext(ctx).Select("member_id", "amount", "payment_month").Find(&paymentRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return nil, nil, false
	}
	var expenseRows []models.Expense
	if err := db.WithContext(ctx).Select("amount", "expense_date").Find(&expenseRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return nil, nil, false
	}
	payments := make([]ledger.Payment, 0, len(paymentRows))
	for _, r := range paymentRows {
		payments = append(payments, ledger.Payment{MemberID: r.MemberID, Amount: r.Amount, Month: r.PaymentMonth})
	}
	expenses := make([]ledger.Expense, 0, len(expenseRows))
	for _, r := range expenseRows {
		expenses = append(expenses, ledger.Expense{Amount: r.Amount, Date: r.ExpenseDate})
	}
	return payments, expenses, true
}

// summaryHandler is the dashboard: 12 monthly rows for the selected year,
// yearly totals and the all-time carry-over from prior years.
func summaryHandler(c *gin.Context) {
	year, ok := selectedYear(c)
	if !ok {
		return
	}
	payments, expenses, ok := fetchLedger(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ledger.Summarize(payments, expenses, year))
}

// nonPayersHandler lists, per month of the selected year, the members who
// have no payment for that period. Months where everyone paid are dropped
// from the response.
func nonPayersHandler(c *gin.Context) {
	year, ok := selectedYear(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	var memberRows []models.Member
	if err := db.WithContext(ctx).Order("full_name").Find(&memberRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	var paymentRows []models.Payment
	err := db.WithContext(ctx).
		Select("member_id", "amount", "payment_month").
		Where("payment_month >= ? AND payment_month < ?",
			time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)).
		Find(&paymentRows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	members := make([]ledger.Member, 0, len(memberRows))
	for _, m := range memberRows {
		members = append(members, ledger.Member{ID: m.ID, FullName: m.FullName})
	}
	payments := make([]ledger.Payment, 0, len(paymentRows))
	for _, r := range paymentRows {
		payments = append(payments, ledger.Payment{MemberID: r.MemberID, Amount: r.Amount, Month: r.PaymentMonth})
	}

	rows := ledger.NonPayers(members, payments, year, time.Now())
	out := make([]ledger.MonthNonPayers, 0, len(rows))
	for _, row := range rows {
		if len(row.Members) > 0 {
			out = append(out, row)
		}
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "months": out})
}
