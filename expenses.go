package main

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"aidat/models"

	"github.com/gin-gonic/gin"
)

type expenseRequest struct {
	Description string  `json:"description" binding:"required"`
	Amount      *int64  `json:"amount" binding:"required,gte=0"` // kuruş
	ExpenseDate string  `json:"expense_date" binding:"required"` // YYYY-MM-DD
	ImageURL    *string `json:"image_url"`
}

// listExpensesHandler returns expenses newest first, optionally restricted
// to one calendar month (month + year query params).
func listExpensesHandler(c *gin.Context) {
	q := db.WithContext(c.Request.Context()).Model(&models.Expense{})
	if my := c.Query("month"); my != "" {
		month, errM := strconv.Atoi(my)
		year, errY := strconv.Atoi(c.Query("year"))
		if errM != nil || errY != nil || month < 1 || month > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month/year filter"})
			return
		}
		from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		q = q.Where("expense_date >= ? AND expense_date < ?", from, from.AddDate(0, 1, 0))
	} else if y := c.Query("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year filter"})
			return
		}
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		q = q.Where("expense_date >= ? AND expense_date < ?", from, from.AddDate(1, 0, 0))
	}
	var items []models.Expense
	if err := q.Order("created_at desc").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func createExpenseHandler(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "member not found"})
		return
	}
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := time.Parse("2006-01-02", req.ExpenseDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense_date"})
		return
	}
	e := models.Expense{
		Description: req.Description,
		Amount:      *req.Amount,
		ExpenseDate: date,
		ImageURL:    req.ImageURL,
		CreatedByID: member.ID,
	}
	if err := db.Create(&e).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	linkReceiptUpload(req.ImageURL, e.ID)
	c.JSON(http.StatusOK, gin.H{"id": e.ID})
}

func updateExpenseHandler(c *gin.Context) {
	var e models.Expense
	if err := db.First(&e, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
		return
	}
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := time.Parse("2006-01-02", req.ExpenseDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense_date"})
		return
	}
	e.Description = req.Description
	e.Amount = *req.Amount
	e.ExpenseDate = date
	if req.ImageURL != nil {
		e.ImageURL = req.ImageURL
	}
	if err := db.Save(&e).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	linkReceiptUpload(req.ImageURL, e.ID)
	c.JSON(http.StatusOK, gin.H{"id": e.ID})
}

// receiptStorePath maps a public receipt URL back to the relative path
// uploads are stored under ("/public/expenses/x.jpg" -> "expenses/x.jpg").
func receiptStorePath(imageURL string) string {
	return strings.TrimPrefix(imageURL, "/public/")
}

// linkReceiptUpload attaches a previously uploaded receipt to its expense
// once the expense row exists.
func linkReceiptUpload(imageURL *string, expenseID uint) {
	if imageURL == nil || *imageURL == "" {
		return
	}
	db.Model(&models.Upload{}).
		Where("store_path = ? AND expense_id IS NULL", receiptStorePath(*imageURL)).
		Update("expense_id", expenseID)
}

func deleteExpenseHandler(c *gin.Context) {
	res := db.Delete(&models.Expense{}, c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "expense deleted"})
}
