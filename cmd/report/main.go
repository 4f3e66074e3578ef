package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"aidat/models"
	"aidat/pkg/ledger"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	year := flag.Int("year", time.Now().Year(), "year to report")
	nonpayers := flag.Bool("nonpayers", false, "list non-payers per month instead of the summary")
	flag.Parse()

	_ = godotenv.Load()
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "DB_DSN not set; export DB_DSN and retry")
		os.Exit(2)
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open db: %v\n", err)
		os.Exit(1)
	}

	var paymentRows []models.Payment
	if err := db.Select("member_id", "amount", "payment_month").Find(&paymentRows).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to load payments: %v\n", err)
		os.Exit(1)
	}
	payments := make([]ledger.Payment, 0, len(paymentRows))
	for _, r := range paymentRows {
		payments = append(payments, ledger.Payment{MemberID: r.MemberID, Amount: r.Amount, Month: r.PaymentMonth})
	}

	if *nonpayers {
		printNonPayers(db, payments, *year)
		return
	}
	printSummary(db, payments, *year)
}

func printSummary(db *gorm.DB, payments []ledger.Payment, year int) {
	var expenseRows []models.Expense
	if err := db.Select("amount", "expense_date").Find(&expenseRows).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to load expenses: %v\n", err)
		os.Exit(1)
	}
	expenses := make([]ledger.Expense, 0, len(expenseRows))
	for _, r := range expenseRows {
		expenses = append(expenses, ledger.Expense{Amount: r.Amount, Date: r.ExpenseDate})
	}

	s := ledger.Summarize(payments, expenses, year)
	fmt.Printf("Yearly overview %d (amounts in kuruş)\n", s.Year)
	fmt.Printf("%-5s %12s %12s %12s\n", "month", "payments", "expenses", "balance")
	for _, m := range s.Months {
		fmt.Printf("%-5d %12d %12d %12d\n", m.Month, m.Payments, m.Expenses, m.Balance)
	}
	fmt.Printf("%-5s %12d %12d %12d\n", "total", s.TotalPayments, s.TotalExpenses, s.Balance)
	fmt.Printf("carry-over from prior years: %d\n", s.CarryOver)
	fmt.Printf("final balance: %d\n", s.Total)
}

func printNonPayers(db *gorm.DB, payments []ledger.Payment, year int) {
	var memberRows []models.Member
	if err := db.Order("full_name").Find(&memberRows).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to load members: %v\n", err)
		os.Exit(1)
	}
	members := make([]ledger.Member, 0, len(memberRows))
	for _, m := range memberRows {
		members = append(members, ledger.Member{ID: m.ID, FullName: m.FullName})
	}

	for _, row := range ledger.NonPayers(members, payments, year, time.Now()) {
		if len(row.Members) == 0 {
			continue
		}
		fmt.Printf("%s:", row.Period)
		for _, m := range row.Members {
			fmt.Printf(" %s;", m.FullName)
		}
		fmt.Println()
	}
}
