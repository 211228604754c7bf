package main

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"minibank/internal/models"
	"minibank/internal/service"
)

var hundred = decimal.NewFromInt(100)

func (a *app) customerMenu(p *prompter, username string) {
	for {
		acc, err := a.ledger.AccountFor(username)
		if err != nil {
			if a.customerWithoutAccount(p, username) {
				continue
			}
			return
		}
		fmt.Println()
		fmt.Printf("===== Customer: %s (Account #%d) =====\n", username, acc.Number)
		fmt.Println("[1] Deposit            [2] Withdraw")
		fmt.Println("[3] Transfer           [4] Account Details")
		fmt.Println("[5] Transaction History [6] Filter Transactions")
		fmt.Println("[7] Monthly Statement  [8] Request Loan")
		fmt.Println("[9] My Loan Requests   [10] Book Appointment")
		fmt.Println("[11] My Appointments   [12] Submit Review")
		fmt.Println("[13] Undo Last Review  [14] Service Feedback")
		fmt.Println("[15] Convert Balance   [16] Change Password")
		fmt.Println("[0] Logout")
		choice, err := p.readTimed("Choose: ")
		if err != nil {
			return
		}
		switch choice {
		case "1":
			a.deposit(p, acc.Number)
		case "2":
			a.withdraw(p, acc.Number)
		case "3":
			a.transfer(p)
		case "4":
			a.accountDetails(acc.Number)
		case "5":
			a.history(acc.Number)
		case "6":
			a.filterTransactions(p, acc.Number)
		case "7":
			a.monthlyStatement(p, acc.Number)
		case "8":
			a.requestLoan(p, username)
		case "9":
			a.myLoans(username)
		case "10":
			a.bookAppointment(p, username)
		case "11":
			a.myAppointments(username)
		case "12":
			a.submitReview(p, username)
		case "13":
			a.undoReview()
		case "14":
			a.submitFeedback(p, username)
		case "15":
			a.convertBalance(p, acc.Number)
		case "16":
			a.changePassword(p, username)
		case "0":
			return
		default:
			fmt.Println("Invalid choice.")
		}
	}
}

// customerWithoutAccount shows the request status for a customer whose
// account is not approved yet. It returns true when the menu should loop
// again (the account may have just been requested).
func (a *app) customerWithoutAccount(p *prompter, username string) bool {
	if req, ok := a.engine.PendingRequestFor(username); ok {
		fmt.Printf("Your account request is pending approval (National ID %s).\n", req.NationalID)
		p.readTimed("Press Enter to log out: ")
		return false
	}
	fmt.Println("You have no approved account yet.")
	answer, err := p.readTimed("Submit an account opening request now? (y/n): ")
	if err != nil || answer != "y" {
		return false
	}
	fullName, err := p.readNonEmpty("Full Name: ")
	if err != nil {
		return false
	}
	nationalID, err := p.readDigits("National ID: ")
	if err != nil {
		return false
	}
	phone, err := p.readDigits("Phone Number: ")
	if err != nil {
		return false
	}
	address, err := p.readNonEmpty("Address: ")
	if err != nil {
		return false
	}
	deposit, err := p.readAmount("Initial Deposit Amount: ")
	if err != nil {
		return false
	}
	if err := a.engine.SubmitAccountRequest(username, fullName, nationalID, deposit, phone, address); err != nil {
		fmt.Println(errorMessage(err))
		return false
	}
	fmt.Println("Account request submitted!")
	return false
}

func (a *app) deposit(p *prompter, number int) {
	amount, err := p.readAmount("Deposit amount: ")
	if err != nil {
		return
	}
	balance, err := a.ledger.Deposit(number, amount)
	if err != nil {
		fmt.Println(errorMessage(err))
		return
	}
	fmt.Printf("Deposit successful. New Balance: %s\n", balance.String())
	if path, err := a.statements.Receipt(models.TransactionTypeDeposit, number, amount, balance); err == nil {
		fmt.Println("Receipt saved as", path)
	}
}

func (a *app) withdraw(p *prompter, number int) {
	amount, err := p.readAmount("Withdraw amount: ")
	if err != nil {
		return
	}
	balance, err := a.ledger.Withdraw(number, amount)
	if err != nil {
		fmt.Println(errorMessage(err))
		return
	}
	fmt.Printf("Withdraw successful. New Balance: %s\n", balance.String())
	if path, err := a.statements.Receipt(models.TransactionTypeWithdraw, number, amount, balance); err == nil {
		fmt.Println("Receipt saved as", path)
	}
}

func (a *app) transfer(p *prompter) {
	from, err := p.readInt("From Account Number: ")
	if err != nil {
		return
	}
	to, err := p.readInt("To Account Number: ")
	if err != nil {
		return
	}
	amount, err := p.readAmount("Amount to transfer: ")
	if err != nil {
		return
	}
	fromBal, toBal, err := a.ledger.Transfer(from, to, amount)
	if err != nil {
		fmt.Println(errorMessage(err))
		return
	}
	fmt.Printf("Transfer successful. From balance: %s, To balance: %s\n", fromBal.String(), toBal.String())
}

func (a *app) accountDetails(number int) {
	acc, err := a.ledger.Account(number)
	if err != nil {
		fmt.Println(errorMessage(err))
		return
	}
	fmt.Printf("Account#: %d\nOwner: %s\nBalance: %s\nNational ID: %s\nPhone: %s\nAddress: %s\n",
		acc.Number, acc.Owner, acc.Balance.String(), acc.NationalID, acc.Phone, acc.Address)
}

func (a *app) history(number int) {
	txs, err := a.statements.History(number)
	if err != nil {
		fmt.Println(errorMessage(err))
		return
	}
	if len(txs) == 0 {
		fmt.Println("No transactions found.")
		return
	}
	printTransactions(txs)
}

func (a *app) filterTransactions(p *prompter, number int) {
	fmt.Println("Filter by: [1] Date Range  [2] Type  [3] Amount  [0] Cancel")
	choice, err := p.readTimed("Choose: ")
	if err != nil {
		return
	}
	var txs []models.Transaction
	switch choice {
	case "1":
		start, err := p.readNonEmpty("Start date (YYYY-MM-DD): ")
		if err != nil {
			return
		}
		end, err := p.readNonEmpty("End date (YYYY-MM-DD): ")
		if err != nil {
			return
		}
		startT, err1 := time.Parse("2006-01-02", start)
		endT, err2 := time.Parse("2006-01-02", end)
		if err1 != nil || err2 != nil {
			fmt.Println("Invalid date.")
			return
		}
		// Make the end date inclusive for the whole day.
		endT = endT.Add(24*time.Hour - time.Second)
		for tx := range a.statements.FilterByDateRange(number, startT, endT) {
			txs = append(txs, tx)
		}
	case "2":
		substr, err := p.readNonEmpty("Type (Deposit/Withdraw/Transfer Out/Transfer In/Loan Approved): ")
		if err != nil {
			return
		}
		for tx := range a.statements.FilterByType(number, substr) {
			txs = append(txs, tx)
		}
	case "3":
		amount, err := p.readAmount("Amount (e.g. 100.00): ")
		if err != nil {
			return
		}
		for tx := range a.statements.FilterByAmount(number, amount) {
			txs = append(txs, tx)
		}
	default:
		return
	}
	if len(txs) == 0 {
		fmt.Println("No transactions match the filter.")
		return
	}
	printTransactions(txs)
}

func (a *app) monthlyStatement(p *prompter, number int) {
	year, err := p.readInt("Year (YYYY): ")
	if err != nil {
		return
	}
	month, err := p.readInt("Month (1-12): ")
	if err != nil {
		return
	}
	if month < 1 || month > 12 {
		fmt.Println("Invalid month.")
		return
	}
	txs, path, err := a.statements.MonthlyStatement(number, year, time.Month(month))
	if err != nil {
		fmt.Println(errorMessage(err))
		return
	}
	if len(txs) == 0 {
		fmt.Println("No transactions in this period.")
	} else {
		printTransactions(txs)
	}
	fmt.Println("Statement saved as", path)
}

func (a *app) requestLoan(p *prompter, username string) {
	amount, err := p.readAmount("Loan amount: ")
	if err != nil {
		return
	}
	reason, err := p.readNonEmpty("Reason for loan: ")
	if err != nil {
		return
	}
	if _, err := a.loans.Submit(username, amount, reason); err != nil {
		fmt.Println(errorMessage(err))
		return
	}
	fmt.Println("Loan request submitted for review (interest rate: 5.0%).")
}

func (a *app) myLoans(username string) {
	loans := a.loans.LoansFor(username)
	if len(loans) == 0 {
		fmt.Println("No loan requests found.")
		return
	}
	for _, loan := range loans {
		fmt.Printf("Amount: %s | Status: %s | Reason: %s\n",
			loan.Amount.StringFixed(2), loan.Status, loan.Reason)
	}
}

func (a *app) bookAppointment(p *prompter, username string) {
	fmt.Println("Services: [1] Open Account [2] Loan [3] Consultation [4] Other")
	choice, err := p.readTimed("Choose service: ")
	if err != nil {
		return
	}
	var svc string
	switch choice {
	case "1":
		svc = "Open Account"
	case "2":
		svc = "Loan"
	case "3":
		svc = "Consultation"
	default:
		svc = "Other"
	}
	date, err := p.readNonEmpty("Preferred Date (YYYY-MM-DD): ")
	if err != nil {
		return
	}
	timeOfDay, err := p.readNonEmpty("Preferred Time (e.g. 14:00): ")
	if err != nil {
		return
	}
	reason, err := p.readTimed("Reason (optional): ")
	if err != nil {
		return
	}
	if err := a.engine.BookAppointment(username, svc, date, timeOfDay, reason); err != nil {
		fmt.Println(errorMessage(err))
		return
	}
	fmt.Println("Appointment request submitted! Wait for admin approval.")
}

func (a *app) myAppointments(username string) {
	pending, approved := a.engine.AppointmentsFor(username)
	if len(pending) == 0 && len(approved) == 0 {
		fmt.Println("No appointments found.")
		return
	}
	for _, appt := range pending {
		fmt.Printf("Pending: %s on %s at %s (%s)\n", appt.Service, appt.Date, appt.Time, appt.Reason)
	}
	for _, appt := range approved {
		fmt.Printf("Approved: %s on %s at %s (%s)\n", appt.Service, appt.Date, appt.Time, appt.Reason)
	}
}

func (a *app) submitReview(p *prompter, username string) {
	text, err := p.readNonEmpty("Write your review: ")
	if err != nil {
		return
	}
	if err := a.feedback.SubmitReview(username, text); err != nil {
		fmt.Println(errorMessage(err))
		return
	}
	fmt.Println("Review submitted.")
}

func (a *app) undoReview() {
	review, ok, err := a.feedback.UndoLastReview()
	if err != nil {
		fmt.Println(errorMessage(err))
		return
	}
	if !ok {
		fmt.Println("No reviews to undo.")
		return
	}
	fmt.Println("Removed review:", review)
}

func (a *app) submitFeedback(p *prompter, username string) {
	fmt.Println("[1] Account Opening [2] Loans [3] Transfers [4] Other")
	choice, err := p.readTimed("Select service: ")
	if err != nil {
		return
	}
	var svc string
	switch choice {
	case "1":
		svc = "Account Opening"
	case "2":
		svc = "Loans"
	case "3":
		svc = "Transfers"
	default:
		svc = "Other"
	}
	text, err := p.readNonEmpty("Write your feedback: ")
	if err != nil {
		return
	}
	if err := a.feedback.SubmitFeedback(username, svc, text); err != nil {
		fmt.Println(errorMessage(err))
		return
	}
	fmt.Println("Service feedback submitted!")
}

func (a *app) convertBalance(p *prompter, number int) {
	acc, err := a.ledger.Account(number)
	if err != nil {
		fmt.Println(errorMessage(err))
		return
	}
	fmt.Printf("Your Balance: %s OMR\n", acc.Balance.String())
	fmt.Println("Convert to: [1] USD  [2] EUR  [3] SAR  [0] Cancel")
	choice, err := p.readTimed("Choose: ")
	if err != nil {
		return
	}
	var currency service.Currency
	switch choice {
	case "1":
		currency = service.CurrencyUSD
	case "2":
		currency = service.CurrencyEUR
	case "3":
		currency = service.CurrencySAR
	default:
		fmt.Println("Conversion cancelled.")
		return
	}
	converted, err := a.rates.Convert(acc.Balance, currency)
	if err != nil {
		fmt.Println(errorMessage(err))
		return
	}
	fmt.Printf("= %s %s\n", converted.StringFixed(2), currency)
}

func printTransactions(txs []models.Transaction) {
	for _, tx := range txs {
		fmt.Printf("%s | %s | Amount: %s | Balance: %s\n",
			tx.Time.Format("1/2/2006 3:04:05 PM"), tx.Type, tx.Amount.String(), tx.Balance.String())
	}
}
