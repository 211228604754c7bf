package main

import (
	"errors"
	"fmt"

	"minibank/internal/service"
)

func (a *app) adminMenu(p *prompter, username string) {
	for {
		fmt.Println()
		fmt.Printf("===== Admin: %s =====\n", username)
		fmt.Println("[1] Process Account Requests  [2] Process Admin Requests")
		fmt.Println("[3] Process Appointments      [4] Process Loan Requests")
		fmt.Println("[5] View Accounts             [6] View All Loan Requests")
		fmt.Println("[7] Search Accounts           [8] Delete Account by Number")
		fmt.Println("[9] Unlock User               [10] Locked Accounts")
		fmt.Println("[11] System Stats             [12] Reports")
		fmt.Println("[13] Exchange Rates           [14] View Reviews")
		fmt.Println("[15] View Service Feedback    [16] Approved Appointments")
		fmt.Println("[17] Export Accounts          [18] Backup Data")
		fmt.Println("[19] Change Password          [20] Delete ALL Data")
		fmt.Println("[0] Logout")
		choice, err := p.readTimed("Choose: ")
		if err != nil {
			return
		}
		switch choice {
		case "1":
			a.processAccountRequests(p)
		case "2":
			a.processAdminRequests(p)
		case "3":
			a.processAppointments(p)
		case "4":
			a.processLoans(p)
		case "5":
			a.viewAccounts()
		case "6":
			a.viewAllLoans()
		case "7":
			a.searchAccounts(p)
		case "8":
			a.deleteAccount(p)
		case "9":
			a.unlockUser(p)
		case "10":
			a.viewLocked()
		case "11":
			a.showStats()
		case "12":
			a.showReports(p)
		case "13":
			a.updateRates(p)
		case "14":
			a.viewReviews()
		case "15":
			a.viewFeedback()
		case "16":
			a.viewApprovedAppointments()
		case "17":
			a.exportAccounts()
		case "18":
			a.backupData()
		case "19":
			a.changePassword(p, username)
		case "20":
			a.wipeAllData(p)
		case "0":
			return
		default:
			fmt.Println("Invalid choice.")
		}
	}
}

// verdictFromKey maps an A/R keystroke onto a verdict; anything else is an
// invalid verdict, which each queue handles per its own policy.
func verdictFromKey(key string) (service.Verdict, bool) {
	switch key {
	case "A", "a":
		return service.VerdictApprove, true
	case "R", "r":
		return service.VerdictReject, true
	default:
		return 0, false
	}
}

func (a *app) processAccountRequests(p *prompter) {
	for {
		req, ok := a.engine.NextAccountRequest()
		if !ok {
			fmt.Println("No requests.")
			return
		}
		fmt.Printf("Username: %s | Name: %s | National ID: %s | Initial: %s | Phone: %s | Address: %s\n",
			req.Username, req.FullName, req.NationalID, req.InitialDeposit.String(), req.Phone, req.Address)
		key, err := p.readTimed("Approve (A) / Reject (R) / Quit (Q): ")
		if err != nil {
			return
		}
		if key == "Q" || key == "q" {
			return
		}
		verdict, ok := verdictFromKey(key)
		if !ok {
			// The head stays put until it is decided.
			fmt.Println("Invalid input.")
			continue
		}
		number, err := a.engine.DecideAccountRequest(verdict)
		if err != nil {
			fmt.Println(errorMessage(err))
			continue
		}
		if verdict == service.VerdictApprove {
			fmt.Printf("Account created. Number: %d\n", number)
		} else {
			fmt.Println("Request rejected.")
		}
	}
}

func (a *app) processAdminRequests(p *prompter) {
	for {
		req, ok := a.engine.NextAdminRequest()
		if !ok {
			fmt.Println("No pending admin requests.")
			return
		}
		fmt.Printf("Username: %s | Name: %s | National ID: %s | Role: Admin\n",
			req.Username, req.FullName, req.NationalID)
		key, err := p.readTimed("Approve (A) / Reject (R) / Quit (Q): ")
		if err != nil {
			return
		}
		if key == "Q" || key == "q" {
			return
		}
		verdict, ok := verdictFromKey(key)
		if !ok {
			fmt.Println("Invalid input.")
			continue
		}
		if err := a.engine.DecideAdminRequest(verdict); err != nil {
			fmt.Println(errorMessage(err))
			continue
		}
		if verdict == service.VerdictApprove {
			fmt.Printf("Admin '%s' approved. Default password: %s\n", req.Username, service.DefaultAdminPassword)
		} else {
			fmt.Println("Admin request rejected.")
		}
	}
}

func (a *app) processAppointments(p *prompter) {
	n := len(a.engine.PendingAppointments())
	if n == 0 {
		fmt.Println("No appointment requests.")
		return
	}
	for i := 0; i < n; i++ {
		appt, ok := a.engine.NextAppointment()
		if !ok {
			return
		}
		fmt.Printf("User: %s | Service: %s | Date: %s | Time: %s | Reason: %s\n",
			appt.Username, appt.Service, appt.Date, appt.Time, appt.Reason)
		key, err := p.readTimed("Approve (A) / Reject (R): ")
		if err != nil {
			return
		}
		verdict, valid := verdictFromKey(key)
		if !valid {
			// Skipped items go to the back of the queue.
			verdict = service.Verdict(-1)
		}
		err = a.engine.DecideAppointment(verdict)
		var svcErr *service.ServiceError
		switch {
		case err == nil && verdict == service.VerdictApprove:
			fmt.Println("Appointment approved!")
		case err == nil:
			fmt.Println("Appointment rejected.")
		case errors.As(err, &svcErr) && svcErr.Code == service.ErrCodeInvalidVerdict:
			fmt.Println("Skipped.")
		default:
			fmt.Println(errorMessage(err))
		}
	}
}

func (a *app) processLoans(p *prompter) {
	pending := a.loans.Pending()
	if len(pending) == 0 {
		fmt.Println("No loan requests.")
		return
	}
	for _, loan := range pending {
		fmt.Printf("User: %s, Amount: %s, Reason: %s\n", loan.Username, loan.Amount.String(), loan.Reason)
		key, err := p.readTimed("Approve (A) / Reject (R): ")
		if err != nil {
			return
		}
		verdict, ok := verdictFromKey(key)
		if !ok {
			fmt.Println("Invalid input. Skipping...")
			continue
		}
		if err := a.loans.Decide(loan.ID, verdict == service.VerdictApprove); err != nil {
			fmt.Println(errorMessage(err))
			continue
		}
		if verdict == service.VerdictApprove {
			fmt.Println("Loan approved and amount added to user account.")
		} else {
			fmt.Println("Loan rejected.")
		}
	}
}

func (a *app) viewAccounts() {
	accounts := a.ledger.Accounts()
	if len(accounts) == 0 {
		fmt.Println("No accounts.")
		return
	}
	for _, acc := range accounts {
		fmt.Printf("#%d | %s | Balance: %s | National ID: %s\n",
			acc.Number, acc.Owner, acc.Balance.String(), acc.NationalID)
	}
}

func (a *app) viewAllLoans() {
	loans := a.loans.All()
	if len(loans) == 0 {
		fmt.Println("No loan requests found.")
		return
	}
	for _, loan := range loans {
		fmt.Printf("User: %s | Amount: %s | Status: %s | Interest: %s%% | Reason: %s\n",
			loan.Username, loan.Amount.StringFixed(2), loan.Status,
			loan.InterestRate.Mul(hundred).StringFixed(1), loan.Reason)
	}
}

func (a *app) searchAccounts(p *prompter) {
	fragment, err := p.readNonEmpty("Name or National ID: ")
	if err != nil {
		return
	}
	matches := a.ledger.Search(fragment)
	if len(matches) == 0 {
		fmt.Println("No matches.")
		return
	}
	for _, acc := range matches {
		fmt.Printf("#%d | %s | Balance: %s | National ID: %s\n",
			acc.Number, acc.Owner, acc.Balance.String(), acc.NationalID)
	}
}

func (a *app) deleteAccount(p *prompter) {
	number, err := p.readInt("Account Number: ")
	if err != nil {
		return
	}
	confirm, err := p.readTimed(fmt.Sprintf("Delete account %d? (yes/no): ", number))
	if err != nil || confirm != "yes" {
		fmt.Println("Deletion cancelled.")
		return
	}
	if err := a.ledger.DeleteAccount(number); err != nil {
		fmt.Println(errorMessage(err))
		return
	}
	fmt.Println("Account deleted.")
}

func (a *app) unlockUser(p *prompter) {
	username, err := p.readNonEmpty("Username to unlock: ")
	if err != nil {
		return
	}
	if err := a.identity.Unlock(username); err != nil {
		fmt.Println(errorMessage(err))
		return
	}
	fmt.Printf("Account for '%s' has been unlocked!\n", username)
}

func (a *app) viewLocked() {
	locked := a.identity.LockedUsernames()
	if len(locked) == 0 {
		fmt.Println("No locked accounts.")
		return
	}
	for _, u := range locked {
		fmt.Println(u)
	}
}

func (a *app) showStats() {
	stats := a.reports.Stats()
	fmt.Printf("Accounts: %d | Users: %d (locked: %d)\n", stats.Accounts, stats.Users, stats.LockedUsers)
	fmt.Printf("Pending: %d account, %d admin, %d appointment, %d loan\n",
		stats.PendingRequests, stats.PendingAdmins, stats.PendingAppointments, stats.PendingLoans)
	fmt.Printf("Total bank balance: %s\n", stats.TotalBalance.StringFixed(2))
}

func (a *app) showReports(p *prompter) {
	fmt.Printf("Total balance:   %s\n", a.reports.TotalBalance().StringFixed(2))
	fmt.Printf("Average balance: %s\n", a.reports.AverageBalance().StringFixed(2))
	fmt.Printf("Customers:       %d\n", a.reports.CustomerCount())
	fmt.Println("Top 3 richest:")
	for _, acc := range a.reports.TopRichest(3) {
		fmt.Printf("  #%d %s: %s\n", acc.Number, acc.Owner, acc.Balance.StringFixed(2))
	}
	threshold, err := p.readAmount("Show accounts above balance: ")
	if err != nil {
		return
	}
	for _, acc := range a.reports.AboveBalance(threshold) {
		fmt.Printf("  #%d %s: %s\n", acc.Number, acc.Owner, acc.Balance.StringFixed(2))
	}
}

func (a *app) updateRates(p *prompter) {
	rates := a.rates.Rates()
	fmt.Printf("Current rates (1 OMR =): USD %s  EUR %s  SAR %s\n",
		rates.USD.String(), rates.EUR.String(), rates.SAR.String())
	answer, err := p.readTimed("Change rates? (y/n): ")
	if err != nil || answer != "y" {
		return
	}
	usd, err := p.readAmount("New USD rate: ")
	if err != nil {
		return
	}
	eur, err := p.readAmount("New EUR rate: ")
	if err != nil {
		return
	}
	sar, err := p.readAmount("New SAR rate: ")
	if err != nil {
		return
	}
	if err := a.rates.Update(usd, eur, sar); err != nil {
		fmt.Println(errorMessage(err))
		return
	}
	fmt.Println("Rates updated!")
}

func (a *app) viewReviews() {
	reviews := a.feedback.Reviews()
	if len(reviews) == 0 {
		fmt.Println("No reviews.")
		return
	}
	for _, r := range reviews {
		fmt.Println(r)
	}
}

func (a *app) viewFeedback() {
	entries := a.feedback.Feedback()
	if len(entries) == 0 {
		fmt.Println("No service feedback.")
		return
	}
	for _, fb := range entries {
		fmt.Printf("%s | %s | %s | %s\n", fb.Username, fb.Service, fb.Text, fb.When)
	}
}

func (a *app) viewApprovedAppointments() {
	appts := a.engine.ApprovedAppointments()
	if len(appts) == 0 {
		fmt.Println("No approved appointments.")
		return
	}
	for _, appt := range appts {
		fmt.Printf("%s: %s on %s at %s (%s)\n", appt.Username, appt.Service, appt.Date, appt.Time, appt.Reason)
	}
}

func (a *app) exportAccounts() {
	path := a.cfg.Storage.OutDir + "/accounts_export.txt"
	n, err := a.ledger.Export(path)
	if err != nil {
		fmt.Println(errorMessage(err))
		return
	}
	fmt.Printf("Exported %d accounts to %s.\n", n, path)
}

func (a *app) backupData() {
	dir, err := a.stores.Backup(a.cfg.Storage.BackupDir)
	if err != nil {
		fmt.Println("Backup failed:", err)
		return
	}
	fmt.Println("Backup written to", dir)
}

func (a *app) wipeAllData(p *prompter) {
	fmt.Println("WARNING: this permanently deletes ALL bank data!")
	confirm, err := p.readTimed("Are you absolutely sure? (yes/no): ")
	if err != nil || confirm != "yes" {
		fmt.Println("Delete operation cancelled.")
		return
	}
	if err := a.stores.WipeAll(); err != nil {
		fmt.Println("Delete failed:", err)
		return
	}
	fmt.Println("All data deleted.")
}

func (a *app) changePassword(p *prompter, username string) {
	oldPassword, err := p.readTimed("Current password: ")
	if err != nil {
		return
	}
	newPassword, err := p.readNonEmpty("New password: ")
	if err != nil {
		return
	}
	if err := a.identity.ChangePassword(username, oldPassword, newPassword); err != nil {
		fmt.Println(errorMessage(err))
		return
	}
	fmt.Println("Password changed.")
}
