package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"aidat/models"
	"aidat/pkg/receipt"

	"github.com/gin-gonic/gin"
)

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// uploadReceiptHandler stores a receipt image for an expense, generates a
// thumbnail and tries to OCR an amount so the expense form can be
// pre-filled. OCR failure is recorded on the upload row, never fatal.
func uploadReceiptHandler(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file missing"})
		return
	}
	if file.Size > 5*1024*1024 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large (max 5MB)"})
		return
	}
	ct := file.Header.Get("Content-Type")

	fileName := fmt.Sprintf("%d-%s", time.Now().Unix(), unsafeFileChars.ReplaceAllString(file.Filename, "_"))
	relPath := "expenses/" + fileName
	fullPath := filepath.Join(uploadBaseDir(), "expenses", fileName)
	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	up := models.Upload{FileName: fileName, StorePath: relPath, ContentType: ct}
	if v := c.PostForm("expense_id"); v != "" {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil && parsed != 0 {
			id := uint(parsed)
			up.ExpenseID = &id
		}
	}

	thumbPath := thumbnailPath(fullPath)
	if err := receipt.Thumbnail(fullPath, thumbPath); err != nil {
		log.Printf("thumbnail failed for %s: %v", relPath, err)
	}

	amount, conf, raw, err := receipt.ExtractAmount(fullPath)
	switch {
	case err == nil && conf > 0.15:
		up.SuggestedAmount = amount
		log.Printf("receipt OCR %s: amount=%d raw=%q conf=%.2f", relPath, amount, raw, conf)
	case err != nil && !errors.Is(err, receipt.ErrNoAmount):
		up.Failed = true
		up.FailedReason = err.Error()
		log.Printf("receipt OCR failed for %s: %v", relPath, err)
	}

	if err := db.Create(&up).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db save failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":               up.ID,
		"url":              "/public/" + relPath,
		"thumb_url":        "/public/" + strings.TrimPrefix(thumbPath, uploadBaseDir()+"/"),
		"suggested_amount": up.SuggestedAmount,
	})
}

// thumbnailPath derives the sibling thumbnail file name for a stored
// receipt (receipt.jpg -> receipt_thumb.jpg).
func thumbnailPath(fullPath string) string {
	ext := filepath.Ext(fullPath)
	return strings.TrimSuffix(fullPath, ext) + "_thumb" + ext
}
