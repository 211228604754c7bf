package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"minibank/internal/config"
	"minibank/internal/models"
	"minibank/internal/service"
	"minibank/internal/store"
)

// app wires the console menus to the engine. All prompting, retries on bad
// input and rendering happen here; the engine never reads or prints.
type app struct {
	cfg        *config.Config
	log        *slog.Logger
	stores     *store.Stores
	identity   *service.IdentityService
	ledger     *service.LedgerService
	loans      *service.LoanService
	statements *service.StatementService
	feedback   *service.FeedbackService
	rates      *service.RateService
	reports    *service.ReportService
	engine     *service.ApprovalEngine
}

func (a *app) run(in io.Reader) {
	p := newPrompter(in, a.cfg.Session.IdleTimeout)
	for {
		fmt.Println()
		fmt.Println("===== MiniBank =====")
		fmt.Println("[1] Customer Login")
		fmt.Println("[2] Customer Signup")
		fmt.Println("[3] Login by National ID")
		fmt.Println("[4] Admin Login")
		fmt.Println("[5] Admin Signup")
		fmt.Println("[0] Exit")
		choice, err := p.read("Choose: ")
		if err != nil {
			return
		}
		switch choice {
		case "1":
			a.login(p, models.RoleCustomer)
		case "2":
			a.signupCustomer(p)
		case "3":
			a.loginByNationalID(p)
		case "4":
			a.login(p, models.RoleAdmin)
		case "5":
			a.signupAdmin(p)
		case "0":
			fmt.Println("Goodbye!")
			return
		default:
			fmt.Println("Invalid choice.")
		}
	}
}

func (a *app) login(p *prompter, role models.Role) {
	username, err := p.read("Username: ")
	if err != nil {
		return
	}
	password, err := p.read("Password: ")
	if err != nil {
		return
	}
	cred, err := a.identity.Authenticate(username, password, role)
	if err != nil {
		fmt.Println(errorMessage(err))
		return
	}
	fmt.Println("Login successful!")
	if cred.Role == models.RoleAdmin {
		a.adminMenu(p, cred.Username)
	} else {
		a.customerMenu(p, cred.Username)
	}
}

func (a *app) loginByNationalID(p *prompter) {
	nationalID, err := p.read("National ID: ")
	if err != nil {
		return
	}
	password, err := p.read("Password: ")
	if err != nil {
		return
	}
	cred, err := a.identity.AuthenticateByNationalID(nationalID, password)
	if err != nil {
		fmt.Println(errorMessage(err))
		return
	}
	fmt.Println("Login successful!")
	a.customerMenu(p, cred.Username)
}

func (a *app) signupCustomer(p *prompter) {
	fullName, err := p.readNonEmpty("Full Name: ")
	if err != nil {
		return
	}
	username, err := p.readNonEmpty("Choose Username: ")
	if err != nil {
		return
	}
	password, err := p.readNonEmpty("Choose Password: ")
	if err != nil {
		return
	}
	nationalID, err := p.readDigits("National ID: ")
	if err != nil {
		return
	}
	phone, err := p.readDigits("Phone Number: ")
	if err != nil {
		return
	}
	address, err := p.readNonEmpty("Address: ")
	if err != nil {
		return
	}
	deposit, err := p.readAmount("Initial Deposit Amount: ")
	if err != nil {
		return
	}
	if _, err := a.identity.Register(username, password, models.RoleCustomer); err != nil {
		fmt.Println(errorMessage(err))
		return
	}
	if err := a.engine.SubmitAccountRequest(username, fullName, nationalID, deposit, phone, address); err != nil {
		fmt.Println(errorMessage(err))
		return
	}
	fmt.Println("Account request submitted! An admin will review it.")
}

func (a *app) signupAdmin(p *prompter) {
	fullName, err := p.readNonEmpty("Full Name: ")
	if err != nil {
		return
	}
	username, err := p.readNonEmpty("Choose Username: ")
	if err != nil {
		return
	}
	nationalID, err := p.readDigits("National ID: ")
	if err != nil {
		return
	}
	phone, err := p.readDigits("Phone Number: ")
	if err != nil {
		return
	}
	address, err := p.readNonEmpty("Address: ")
	if err != nil {
		return
	}
	if err := a.engine.SubmitAdminRequest(username, fullName, nationalID, phone, address); err != nil {
		fmt.Println(errorMessage(err))
		return
	}
	fmt.Println("Admin account request submitted for approval!")
}

// errorMessage renders a typed engine failure for the console.
func errorMessage(err error) string {
	var svcErr *service.ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Message
	}
	return err.Error()
}
