package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"bikerental/internal/cli"
	"bikerental/internal/store"
)

func main() {
	scanner := bufio.NewScanner(os.Stdin)

	answer := prompt(scanner, "Do you want to enter the system? [y/n] ")
	if answer != "y" {
		return
	}

	name := prompt(scanner, "What is the store name? ")
	address := prompt(scanner, "What is the store address? ")

	st := store.New(name, address)

	fmt.Printf("Welcome to %s\n", st.Name())
	cli.New(st, scanner, os.Stdout).Run()
}

func prompt(scanner *bufio.Scanner, question string) string {
	fmt.Print(question)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}
