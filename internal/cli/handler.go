package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"bikerental/internal/store"
)

type Store interface {
	AddBike(color string) (store.Bike, error)
	AddClient(name, email, cpf string) (store.Client, error)
	ListBikes() []store.Bike
	AddRental(model, email string, quantity int, family bool) ([]store.Rental, error)
	CalculateRental(email string) (float64, error)
}

// Handler runs the interactive menu over the store. Business errors are
// printed and the loop continues; only option 0 or end of input stops it.
type Handler struct {
	store   Store
	scanner *bufio.Scanner
	out     io.Writer
}

// New builds a handler reading from the given scanner. Sharing the
// scanner lets the caller interleave its own prompts with the menu
// loop without losing buffered input.
func New(st Store, scanner *bufio.Scanner, out io.Writer) *Handler {
	return &Handler{
		store:   st,
		scanner: scanner,
		out:     out,
	}
}

func (h *Handler) Run() {
	for {
		h.printMenu()

		option, ok := h.prompt("Which option? ")
		if !ok {
			return
		}

		switch option {
		case "1":
			h.handleAddBike()
		case "2":
			h.handleAddClient()
		case "3":
			h.handleListBikes()
		case "4":
			h.handleAddRental()
		case "5":
			h.handleSettle()
		case "0":
			fmt.Fprintln(h.out, "Goodbye!")
			return
		default:
			fmt.Fprintln(h.out, "Unknown option. The input must be an integer between 0 and 5.")
		}
	}
}

func (h *Handler) printMenu() {
	fmt.Fprintln(h.out, "========== Menu ==========")
	fmt.Fprintln(h.out, "[1] Add bike")
	fmt.Fprintln(h.out, "[2] Register client")
	fmt.Fprintln(h.out, "[3] List bikes")
	fmt.Fprintln(h.out, "[4] Rent bikes")
	fmt.Fprintln(h.out, "[5] Settle rentals")
	fmt.Fprintln(h.out, "[0] Exit")
	fmt.Fprintln(h.out, "==========================")
}

func (h *Handler) prompt(question string) (string, bool) {
	fmt.Fprint(h.out, question)
	if !h.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(h.scanner.Text()), true
}

func (h *Handler) handleAddBike() {
	color, ok := h.prompt("Which color? ")
	if !ok {
		return
	}

	bike, err := h.store.AddBike(color)
	if err != nil {
		fmt.Fprintln(h.out, "Error:", err)
		return
	}
	fmt.Fprintf(h.out, "Bike #%d (%s) added to the inventory\n", bike.ID, bike.Color)
}

func (h *Handler) handleAddClient() {
	name, ok := h.prompt("Client name? ")
	if !ok {
		return
	}
	email, ok := h.prompt("Client email? ")
	if !ok {
		return
	}
	cpf, ok := h.prompt("Client CPF? ")
	if !ok {
		return
	}

	client, err := h.store.AddClient(name, email, cpf)
	if err != nil {
		fmt.Fprintln(h.out, "Error:", err)
		return
	}
	fmt.Fprintf(h.out, "Client #%d (%s) registered\n", client.ID, client.Email)
}

func (h *Handler) handleListBikes() {
	fmt.Fprintln(h.out, "=== Bike inventory ===")
	for _, bike := range h.store.ListBikes() {
		status := "available"
		if !bike.Available {
			status = "rented"
		}
		fmt.Fprintf(h.out, "#%d %s (%s)\n", bike.ID, bike.Color, status)
	}
}

func (h *Handler) handleAddRental() {
	model, ok := h.prompt("Rental model (hourly/daily/weekly)? ")
	if !ok {
		return
	}
	email, ok := h.prompt("Client email? ")
	if !ok {
		return
	}
	quantityText, ok := h.prompt("How many bikes? ")
	if !ok {
		return
	}
	quantity, err := strconv.Atoi(quantityText)
	if err != nil {
		fmt.Fprintln(h.out, "Error: rental quantity must be a positive integer")
		return
	}
	familyAnswer, ok := h.prompt("Family rental? [y/n] ")
	if !ok {
		return
	}

	rentals, err := h.store.AddRental(model, email, quantity, familyAnswer == "y")
	if err != nil {
		fmt.Fprintln(h.out, "Error:", err)
		return
	}
	fmt.Fprintf(h.out, "%d bikes rented to %s\n", len(rentals), email)
}

func (h *Handler) handleSettle() {
	email, ok := h.prompt("Client email? ")
	if !ok {
		return
	}

	amount, err := h.store.CalculateRental(email)
	if err != nil {
		fmt.Fprintln(h.out, "Error:", err)
		return
	}
	fmt.Fprintf(h.out, "The rental amounts to %.2f\n", amount)
}
