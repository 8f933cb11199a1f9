// Package cli is the interactive menu front end of the tracker.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dafibh/pennywise/pennywise-backend/internal/analytics"
	"github.com/dafibh/pennywise/pennywise-backend/internal/domain"
	"github.com/dafibh/pennywise/pennywise-backend/internal/fileio"
	"github.com/dafibh/pennywise/pennywise-backend/internal/service"
	"github.com/shopspring/decimal"
)

var errInvalidChoice = errors.New("invalid choice")

// Services are the operations the menu delegates to
type Services struct {
	Transactions *service.TransactionService
	Budgets      *service.BudgetService
	Savings      *service.SavingsService
	Analytics    *service.AnalyticsService
}

// App runs the menu loop over a reader and a writer
type App struct {
	in       *bufio.Scanner
	out      io.Writer
	styles   Styles
	services Services
	// dir is searched for files to import
	dir string
}

// New creates an App reading commands from in and writing to out
func New(in io.Reader, out io.Writer, services Services) *App {
	return &App{
		in:       bufio.NewScanner(in),
		out:      out,
		styles:   DefaultStyles(),
		services: services,
		dir:      ".",
	}
}

// SetImportDir sets the directory listed by the import option
func (a *App) SetImportDir(dir string) {
	a.dir = dir
}

type menuItem struct {
	label  string
	action func() error
}

func (a *App) menu() []menuItem {
	return []menuItem{
		{"Record a Transaction", a.recordTransaction},
		{"Set a Budget", a.setBudget},
		{"Track Budget Usage", a.trackUsage},
		{"Set a Savings Goal", a.setSavingsGoal},
		{"View Spending Summary", a.viewSummary},
		{"View Spending Trends", a.viewTrends},
		{"View Budget Alerts", a.viewAlerts},
		{"Import Transactions", a.importTransactions},
		{"Export Transactions", a.exportTransactions},
		{"Exit", nil},
	}
}

// Run shows the menu until the user exits or the input ends.
// Failed actions are reported and the loop continues.
func (a *App) Run() error {
	items := a.menu()
	for {
		a.printMenu(items)

		choice, ok := a.prompt(fmt.Sprintf("Choose an option (1-%d): ", len(items)))
		if !ok {
			return a.in.Err()
		}

		n, err := strconv.Atoi(choice)
		if err != nil || n < 1 || n > len(items) {
			a.println(a.styles.Error.Render("Invalid choice, please try again."))
			continue
		}

		item := items[n-1]
		if item.action == nil {
			a.println("Exiting the program.")
			return nil
		}
		if err := item.action(); err != nil {
			if errors.Is(err, io.EOF) {
				return a.in.Err()
			}
			a.println(a.styles.Error.Render("Error: " + err.Error()))
		}
	}
}

func (a *App) printMenu(items []menuItem) {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("%d. %s", i+1, item.label)
	}
	a.println("")
	a.println(a.styles.Title.Render("--- Personal Finance Management ---"))
	a.println(a.styles.Menu.Render(strings.Join(lines, "\n")))
}

func (a *App) recordTransaction() error {
	amount, err := a.promptDecimal("Enter the transaction amount: ")
	if err != nil {
		return err
	}
	category, err := a.promptRequired("Enter the category (e.g., Food, Rent, Entertainment): ")
	if err != nil {
		return err
	}
	date, err := a.promptRequired("Enter the transaction date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	kind, err := a.promptRequired("Enter the type (income/expense) [expense]: ", "expense")
	if err != nil {
		return err
	}
	txType, err := domain.ParseTransactionType(kind)
	if err != nil {
		return err
	}

	result, err := a.services.Transactions.Record(amount, category, date, txType)
	if err != nil {
		return err
	}
	tx := result.Transaction
	a.println(a.styles.Success.Render(fmt.Sprintf("Transaction added: %s $%s on %s (%s)",
		tx.Category, tx.Amount.StringFixed(2), tx.Date, tx.Type)))
	for _, alert := range result.Alerts {
		a.println(a.alertStyle(alert).Render(alert.Message))
	}
	return nil
}

func (a *App) setBudget() error {
	category, err := a.promptRequired("Enter the budget category (e.g., Food, Rent): ")
	if err != nil {
		return err
	}
	limit, err := a.promptDecimal(fmt.Sprintf("Enter the budget amount for %s: ", category))
	if err != nil {
		return err
	}

	if _, err := a.services.Budgets.SetBudget(category, limit); err != nil {
		return err
	}
	a.println(a.styles.Success.Render(fmt.Sprintf("Budget set for %s: $%s", category, limit.StringFixed(2))))
	return nil
}

func (a *App) trackUsage() error {
	status, err := a.services.Budgets.Status()
	if err != nil {
		return err
	}

	a.println(a.styles.Heading.Render("Budget Usage:"))
	if len(status) == 0 {
		a.println(a.styles.Muted.Render("No budgets set."))
		return nil
	}
	for _, s := range status {
		remaining := "$" + s.Remaining.StringFixed(2) + " left"
		if s.Status == domain.BudgetStateOver {
			remaining = a.styles.Error.Render("$" + s.Remaining.Abs().StringFixed(2) + " over")
		}
		a.println(fmt.Sprintf("%s: $%s of $%s, %s", s.Category, s.Spent.StringFixed(2), s.Limit.StringFixed(2), remaining))
	}
	return nil
}

func (a *App) setSavingsGoal() error {
	target, err := a.promptDecimal("Enter your savings goal target: ")
	if err != nil {
		return err
	}
	monthsText, err := a.promptRequired("Enter the number of months to reach the target: ")
	if err != nil {
		return err
	}
	months, err := strconv.Atoi(monthsText)
	if err != nil {
		return fmt.Errorf("%w: months must be a whole number", domain.ErrInvalidInput)
	}

	goal, err := a.services.Savings.SetGoal(target, months)
	if err != nil {
		return err
	}
	a.println(a.styles.Box.Render(analytics.RenderGoal(*goal)))
	return nil
}

func (a *App) viewSummary() error {
	summary, err := a.services.Analytics.Summary(domain.TransactionTypeExpense)
	if err != nil {
		return err
	}
	totals, err := a.services.Analytics.Totals()
	if err != nil {
		return err
	}

	a.println(a.styles.Heading.Render("Spending Summary:"))
	for _, e := range summary.Entries() {
		a.println(fmt.Sprintf("%s: $%s", e.Key, e.Amount.StringFixed(2)))
	}
	a.println(fmt.Sprintf("Total Spending: %s", a.styles.Spent.Render("$"+totals.Expenses.StringFixed(2))))
	a.println(fmt.Sprintf("Total Income: %s", a.styles.Income.Render("$"+totals.Income.StringFixed(2))))
	return nil
}

func (a *App) viewTrends() error {
	report, err := a.services.Analytics.CurrentTrends()
	if err != nil {
		return err
	}

	a.println(a.styles.Heading.Render("Spending Trends (current vs previous month):"))
	if report.Trend.Len() == 0 {
		a.println(a.styles.Muted.Render("No spending recorded this month."))
	}
	for _, e := range report.Trend.Entries() {
		a.println(fmt.Sprintf("%s: $%s", e.Key, e.Amount.StringFixed(2)))
	}

	a.println(a.styles.Heading.Render("Spending Insights:"))
	lines := make([]string, 0, len(report.Insights)+1)
	for _, insight := range report.Insights {
		lines = append(lines, insight.Message)
	}
	if report.Overall != nil {
		lines = append(lines, report.Overall.Message)
	}
	if len(lines) > 0 {
		a.println(a.styles.Box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
	}
	return nil
}

func (a *App) viewAlerts() error {
	alerts, err := a.services.Budgets.Alerts()
	if err != nil {
		return err
	}

	a.println(a.styles.Heading.Render("Budget Alerts:"))
	if len(alerts) == 0 {
		a.println(a.styles.Muted.Render("No budget alerts."))
	}
	for _, alert := range alerts {
		a.println(a.alertStyle(alert).Render(alert.Message))
	}
	return nil
}

func (a *App) importTransactions() error {
	format, err := a.promptFormat("import")
	if err != nil {
		return err
	}

	files, err := filesWithExtension(a.dir, format.Extension())
	if err != nil {
		return err
	}
	if len(files) == 0 {
		a.println(a.styles.Muted.Render(fmt.Sprintf("No %s files found in %s.", strings.ToUpper(string(format)), a.dir)))
		return nil
	}

	a.println(fmt.Sprintf("Select a %s file to import:", strings.ToUpper(string(format))))
	for i, f := range files {
		a.println(fmt.Sprintf("%d. %s", i+1, f))
	}
	choice, err := a.promptRequired(fmt.Sprintf("Enter the number of the %s file: ", strings.ToUpper(string(format))))
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > len(files) {
		return fmt.Errorf("%w: please select a valid file number", errInvalidChoice)
	}

	path := filepath.Join(a.dir, files[n-1])
	count, err := a.services.Transactions.ImportFile(path)
	if err != nil {
		return fmt.Errorf("failed to import %s file: %w", strings.ToUpper(string(format)), err)
	}
	a.println(a.styles.Success.Render(fmt.Sprintf("Imported %d transactions from %s", count, files[n-1])))
	return nil
}

func (a *App) exportTransactions() error {
	format, err := a.promptFormat("export")
	if err != nil {
		return err
	}

	name, err := a.promptRequired(fmt.Sprintf("Enter the name of the file to export (e.g., transactions%s): ", format.Extension()))
	if err != nil {
		return err
	}
	if filepath.Ext(name) == "" {
		name += format.Extension()
	}
	if got, err := fileio.FormatFromPath(name); err != nil || got != format {
		return fmt.Errorf("%w: file name must end in %s", domain.ErrUnsupportedFileType, format.Extension())
	}

	count, err := a.services.Transactions.ExportFile(name)
	if err != nil {
		return fmt.Errorf("failed to export transactions: %w", err)
	}
	a.println(a.styles.Success.Render(fmt.Sprintf("Exported %d transactions to %s.", count, name)))
	return nil
}

func (a *App) promptFormat(action string) (fileio.Format, error) {
	a.println(fmt.Sprintf("Select the file type to %s:", action))
	a.println("1. CSV")
	a.println("2. JSON")
	choice, err := a.promptRequired("Enter the number for the file type (1 or 2): ")
	if err != nil {
		return "", err
	}
	switch choice {
	case "1":
		return fileio.FormatCSV, nil
	case "2":
		return fileio.FormatJSON, nil
	}
	return "", fmt.Errorf("%w: please enter either '1' (CSV) or '2' (JSON)", errInvalidChoice)
}

func (a *App) alertStyle(alert domain.BudgetAlert) lipgloss.Style {
	if alert.Level == domain.AlertLevelExceeded {
		return a.styles.Error
	}
	return a.styles.Warning
}

// prompt prints label and reads one trimmed line. It reports false at end of input.
func (a *App) prompt(label string) (string, bool) {
	fmt.Fprint(a.out, a.styles.Prompt.Render(label))
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

// promptRequired reads a non-empty answer, falling back to def when given
func (a *App) promptRequired(label string, def ...string) (string, error) {
	answer, ok := a.prompt(label)
	if !ok {
		return "", io.EOF
	}
	if answer == "" && len(def) > 0 {
		return def[0], nil
	}
	if answer == "" {
		return "", fmt.Errorf("%w: a value is required", domain.ErrInvalidInput)
	}
	return answer, nil
}

func (a *App) promptDecimal(label string) (decimal.Decimal, error) {
	answer, err := a.promptRequired(label)
	if err != nil {
		return decimal.Decimal{}, err
	}
	d, err := decimal.NewFromString(answer)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidInput, answer)
	}
	return d, nil
}

func (a *App) println(s string) {
	fmt.Fprintln(a.out, s)
}

func filesWithExtension(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ext) {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}
