package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"bikerental/internal/store"
)

func runSession(t *testing.T, input string) string {
	t.Helper()
	st := store.New("Test Store", "1 Test Street")
	var out bytes.Buffer
	New(st, bufio.NewScanner(strings.NewReader(input)), &out).Run()
	return out.String()
}

func TestRun_FullSession(t *testing.T) {
	input := strings.Join([]string{
		"1", "red",
		"1", "blue",
		"2", "Alice", "alice@mail.com", "111.222.333-44",
		"3",
		"5", "alice@mail.com",
		"0",
	}, "\n") + "\n"

	output := runSession(t, input)

	assert.Contains(t, output, "Bike #1 (red) added to the inventory")
	assert.Contains(t, output, "Bike #2 (blue) added to the inventory")
	assert.Contains(t, output, "Client #1 (alice@mail.com) registered")
	assert.Contains(t, output, "#1 red (available)")
	assert.Contains(t, output, "#2 blue (available)")
	assert.Contains(t, output, "The rental amounts to 0.00")
	assert.Contains(t, output, "Goodbye!")
}

func TestRun_RentalShowsInInventory(t *testing.T) {
	input := strings.Join([]string{
		"1", "red",
		"2", "Alice", "alice@mail.com", "11122233344",
		"4", "hourly", "alice@mail.com", "1", "n",
		"3",
		"0",
	}, "\n") + "\n"

	output := runSession(t, input)

	assert.Contains(t, output, "1 bikes rented to alice@mail.com")
	assert.Contains(t, output, "#1 red (rented)")
}

func TestRun_BusinessErrorsKeepTheLoopAlive(t *testing.T) {
	input := strings.Join([]string{
		"4", "hourly", "ghost@mail.com", "1", "n",
		"2", "Alice", "alice@mail.com", "bad-cpf",
		"9",
		"0",
	}, "\n") + "\n"

	output := runSession(t, input)

	assert.Contains(t, output, "Error: only 0 of 1 requested bikes are available")
	assert.Contains(t, output, "Error: invalid cpf")
	assert.Contains(t, output, "Unknown option")
	assert.Contains(t, output, "Goodbye!")
}

func TestRun_NonIntegerQuantity(t *testing.T) {
	input := strings.Join([]string{
		"4", "hourly", "alice@mail.com", "two",
		"0",
	}, "\n") + "\n"

	output := runSession(t, input)

	assert.Contains(t, output, "Error: rental quantity must be a positive integer")
}

func TestRun_ExitsOnEndOfInput(t *testing.T) {
	output := runSession(t, "3\n")
	assert.Contains(t, output, "=== Bike inventory ===")
}
