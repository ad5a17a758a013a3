// Package main runs the interactive banking demo client: an event loop over
// the session core standing in for the mobile app's screens.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"pocketbank/internal/accounts"
	"pocketbank/internal/biometric"
	"pocketbank/internal/config"
	"pocketbank/internal/directory"
	"pocketbank/internal/keystore"
	"pocketbank/internal/logger"
	"pocketbank/internal/models"
	"pocketbank/internal/session"
)

var (
	version   string
	buildDate string
)

// readLine prompts and reads one trimmed line from the scanner.
func readLine(scanner *bufio.Scanner, prompt string) string {
	fmt.Print(prompt)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

// readPassword prompts and reads a password without echo when stdin is a
// terminal, falling back to a plain line otherwise.
func readPassword(scanner *bufio.Scanner, prompt string) string {
	fmt.Print(prompt)
	if term.IsTerminal(int(syscall.Stdin)) {
		b, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err == nil {
			return strings.TrimSpace(string(b))
		}
	}
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

// repl runs the interactive shell loop, dispatching intents to the session
// manager and the account cache.
func repl(sess *session.Manager, cache *accounts.Cache) {
	scanner := bufio.NewScanner(os.Stdin)
	ctx := context.Background()

	// Print navigation intents the way the app's router would act on them.
	go func() {
		for e := range sess.Events() {
			switch e {
			case session.NavigateLogin:
				fmt.Println("\n[navigate] login screen")
			case session.NavigateMain:
				fmt.Println("\n[navigate] main screen")
			}
		}
	}()

	for {
		fmt.Print("pocketbank> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, register, login, biologin, enable-bio, disable-bio, accounts, add, whoami, logout, background, foreground, exit")
		case "register":
			name := readLine(scanner, "Name: ")
			username := readLine(scanner, "Username: ")
			password := readPassword(scanner, "Password: ")
			if err := sess.Register(ctx, name, username, password); err != nil {
				fmt.Println("registration failed:", err)
				continue
			}
			fmt.Println("Welcome,", sess.Snapshot().User.Name)
		case "login":
			username := readLine(scanner, "Username: ")
			password := readPassword(scanner, "Password: ")
			if err := sess.Login(ctx, username, password); err != nil {
				fmt.Println("login failed:", err)
				continue
			}
			fmt.Println("Welcome back,", sess.Snapshot().User.Name)
		case "biologin":
			if err := sess.BiometricLogin(ctx); err != nil {
				fmt.Println("biometric login failed:", err)
				continue
			}
			fmt.Println("Welcome back,", sess.Snapshot().User.Name)
		case "enable-bio":
			password := readPassword(scanner, "Confirm password: ")
			if err := sess.EnableBiometric(ctx, password); err != nil {
				fmt.Println("could not enable biometric login:", err)
				continue
			}
			fmt.Println("Biometric login enabled")
		case "disable-bio":
			sess.DisableBiometric(ctx)
			fmt.Println("Biometric login disabled")
		case "accounts":
			snap := sess.Snapshot()
			if !snap.LoggedIn {
				fmt.Println("Not logged in")
				continue
			}
			if err := cache.Refresh(ctx, snap.User.ID); err != nil {
				fmt.Println("failed to fetch accounts:", err)
				continue
			}
			list := cache.Accounts()
			if len(list) == 0 {
				fmt.Println("No bank accounts yet")
				continue
			}
			for _, a := range list {
				fmt.Printf("%s  %s  %-8s  %.2f %s  (%s)\n",
					a.ID, a.AccountNumber, a.AccountType, a.Balance, a.Currency, a.BankName)
			}
		case "add":
			snap := sess.Snapshot()
			if !snap.LoggedIn {
				fmt.Println("Not logged in")
				continue
			}
			draft := models.BankAccount{
				AccountNumber: readLine(scanner, "Account number: "),
				AccountType:   models.AccountType(readLine(scanner, "Type (savings/checking/credit): ")),
				Currency:      strings.ToUpper(readLine(scanner, "Currency (e.g. USD): ")),
				BankName:      readLine(scanner, "Bank name: "),
			}
			if b, err := strconv.ParseFloat(readLine(scanner, "Balance: "), 64); err == nil {
				draft.Balance = b
			}
			created, err := cache.Append(ctx, snap.User.ID, draft)
			if err != nil {
				fmt.Println("failed to add account:", err)
				continue
			}
			fmt.Println("Added account", created.ID)
		case "whoami":
			snap := sess.Snapshot()
			if !snap.LoggedIn {
				fmt.Println("Not logged in")
				continue
			}
			fmt.Printf("%s (%s), biometric enabled: %v\n", snap.User.Name, snap.User.Username, snap.BiometricEnabled)
		case "logout":
			sess.Logout(ctx)
			fmt.Println("Logged out")
		case "background":
			// Simulates the app losing the foreground.
			sess.HandleBackground(ctx)
			fmt.Println("App backgrounded")
		case "foreground":
			sess.HandleForeground(ctx)
			fmt.Println("App foregrounded")
		case "exit":
			// Same policy as backgrounding: no session survives.
			sess.HandleBackground(ctx)
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

func main() {
	options := config.Parse()

	fmt.Printf("pocketbank %s (%s)\n", version, buildDate)

	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		os.Exit(1)
	}

	store := keystore.New(options.StorePath, log.Log)
	client := directory.NewClient(options.APIBaseURL, nil)
	capability := &biometric.Terminal{In: os.Stdin, Out: os.Stdout}

	sess := session.NewManager(client, store, capability, log.Log,
		time.Duration(options.TimeoutSeconds)*time.Second)
	cache := accounts.NewCache(client, sess)

	if options.Restore {
		// Relaxed mode: try to resume the saved session instead of forcing
		// a fresh login.
		if err := sess.RestoreSession(context.Background()); err != nil {
			fmt.Println("could not restore session:", err)
		} else if snap := sess.Snapshot(); snap.LoggedIn {
			fmt.Println("Session restored for", snap.User.Name)
		}
	}

	repl(sess, cache)
}
