package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yyyoichi/lsb_zero/internal/config"
)

var errInvalidChoice = errors.New("invalid choice")

// prompt fills cfg from answers read on in.
func prompt(cfg *config.Config, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	ask := func(question string) (string, error) {
		fmt.Fprint(out, question)
		answer, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && answer != "") {
			return "", fmt.Errorf("reading answer: %w", err)
		}
		return strings.TrimRight(answer, "\r\n"), nil
	}

	path, err := ask("Enter the file path: ")
	if err != nil {
		return err
	}
	cfg.Input = strings.TrimSpace(path)

	choice, err := ask("Do you want to (h)ide a message or (f)ind a message? ")
	if err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(choice)) {
	case "h":
		cfg.Mode = config.Hide
		output, err := ask("Enter the output file path: ")
		if err != nil {
			return err
		}
		cfg.Output = strings.TrimSpace(output)
		message, err := ask("Enter the message to hide: ")
		if err != nil {
			return err
		}
		cfg.Message = strings.TrimLeft(message, " \t")
	case "f":
		cfg.Mode = config.Find
		answer, err := ask("Enter the length of the hidden message: ")
		if err != nil {
			return err
		}
		length, err := strconv.Atoi(strings.TrimSpace(answer))
		if err != nil {
			return fmt.Errorf("parsing message length: %w", err)
		}
		cfg.Length = length
	default:
		return fmt.Errorf("%w: %q", errInvalidChoice, choice)
	}
	fmt.Fprintln(out)
	return nil
}
