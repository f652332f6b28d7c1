// Package prompt runs the interactive lookup session: ask for a city, show
// its county and plate prefix, and offer to record cities that are missing.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	mterrors "github.com/mtplates/mtplates/internal/errors"
	"github.com/mtplates/mtplates/internal/logging"
	"github.com/mtplates/mtplates/internal/model"
	"github.com/mtplates/mtplates/internal/output"
	"github.com/mtplates/mtplates/internal/validate"
)

// Prompts and messages.
const (
	CityPrompt    = "Please enter a city name (or 'x' to exit): "
	ConfirmPrompt = "Is this correct? (y/n): "
	ReadyPrompt   = "Ready to play? (y/n): "
	RetryMessage  = "Let's try again."
	YesNoMessage  = "Invalid input. Please type 'y' or 'n'."
	GoodbyeMsg    = "Thanks! Have a good day."
	DeclinedMsg   = "Okay, goodbye!"
	ExitSentinel  = "x"
)

// Directory is the part of the city store the session needs.
type Directory interface {
	Lookup(name string) (model.CityRecord, error)
	SuggestCity(name string) string
	ResolvePrefix(county string) (int, error)
	AddCity(city, county string) (model.CityRecord, error)
}

// Session is one interactive run over an input stream.
type Session struct {
	dir Directory
	in  *bufio.Reader
	out *output.CLIFormatter

	// Intro shows the greeting and asks whether to start.
	Intro bool
}

// NewSession creates a session reading answers from in.
func NewSession(dir Directory, in io.Reader, out *output.CLIFormatter) *Session {
	return &Session{
		dir: dir,
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Run loops until the user enters the exit sentinel or input ends.
// Recoverable errors are reported and the loop continues; only a failure
// to read input is returned.
func (s *Session) Run() error {
	err := s.run()
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *Session) run() error {
	if s.Intro {
		s.out.Title("Do you want to learn about your Montana Counties?")
		s.out.Muted("Look up any city to see its county and license plate prefix.")
		ready, err := s.askYesNo(ReadyPrompt)
		if err != nil {
			return err
		}
		if !ready {
			s.out.Println(DeclinedMsg)
			return nil
		}
	}

	for {
		city, err := s.readLine(CityPrompt)
		if err != nil {
			return err
		}
		if strings.EqualFold(city, ExitSentinel) {
			break
		}
		if err := validate.CityName(city); err != nil {
			s.report(err)
			continue
		}

		rec, err := s.dir.Lookup(city)
		if err == nil {
			s.out.PrintCity(rec)
			continue
		}
		if !errors.Is(err, mterrors.ErrCityNotFound) {
			s.report(err)
			continue
		}
		if hint := s.dir.SuggestCity(city); hint != "" {
			s.out.Muted("Did you mean '" + hint + "'?")
		}
		if err := s.newEntry(city); err != nil {
			return err
		}
	}

	s.out.Println(GoodbyeMsg)
	return nil
}

// newEntry offers to add a missing city. Every rejected county or
// declined confirmation goes back to the offer.
func (s *Session) newEntry(city string) error {
	for {
		yes, err := s.askYesNo(fmt.Sprintf(
			"%s not found. Would you like to make a new entry for %s? (y/n): ", city, city))
		if err != nil {
			return err
		}
		if !yes {
			return nil
		}

		county, err := s.readLine(fmt.Sprintf("Enter the County name for %s: ", city))
		if err != nil {
			return err
		}
		if err := validate.CountyName(county); err != nil {
			s.report(err)
			continue
		}
		if _, err := s.dir.ResolvePrefix(county); err != nil {
			s.report(err)
			continue
		}

		s.out.PrintConfirmation(city, county)
		ok, err := s.askYesNo(ConfirmPrompt)
		if err != nil {
			return err
		}
		if !ok {
			s.out.Println(RetryMessage)
			continue
		}

		rec, err := s.dir.AddCity(city, county)
		if err != nil {
			s.report(err)
			return nil
		}
		s.out.PrintAdded(rec)
		return nil
	}
}

// askYesNo repeats the question until the answer is y or n.
func (s *Session) askYesNo(question string) (bool, error) {
	for {
		answer, err := s.readLine(question)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}
		s.out.Println(YesNoMessage)
	}
}

// readLine prints the prompt and returns the next trimmed input line.
// A final line without a newline is returned before io.EOF.
func (s *Session) readLine(prompt string) (string, error) {
	s.out.Print(prompt)
	line, err := s.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			s.out.Println()
		}
		return "", err
	}
	return validate.SanitizeInput(line), nil
}

func (s *Session) report(err error) {
	logging.DebugLog("session error", logging.KeyError, err)
	s.out.PrintError(err.Error(), mterrors.GetSuggestion(err))
}
