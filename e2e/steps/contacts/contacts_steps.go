package contacts

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Do(method, path string, body any) error
	GetResponseField(field string) (any, error)
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
	SaveID(name string, id int64)
	SavedID(name string) (int64, bool)
}

// RegisterSteps registers contact and listing step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &contactSteps{tc: tc}

	ctx.Step(`^the address book is emptied$`, steps.emptyAddressBook)
	ctx.Step(`^(\d+) contacts exist$`, steps.contactsExist)
	ctx.Step(`^I create a contact named "([^"]*)" "([^"]*)" with email "([^"]*)"$`, steps.createContact)
	ctx.Step(`^I save the contact id as "([^"]*)"$`, steps.saveContactID)
	ctx.Step(`^I rename contact "([^"]*)" to "([^"]*)"$`, steps.renameContact)
	ctx.Step(`^I delete contact "([^"]*)"$`, steps.deleteContact)
	ctx.Step(`^the page should hold (\d+) rows with total (\d+)$`, steps.pageShouldHold)
	ctx.Step(`^the first row field "([^"]*)" should equal "([^"]*)"$`, steps.firstRowFieldShouldEqual)
}

type contactSteps struct {
	tc TestContext
}

type page struct {
	Data  []map[string]any `json:"data"`
	Total int64            `json:"total"`
}

func (s *contactSteps) lastPage() (*page, error) {
	var p page
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &p); err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	return &p, nil
}

// emptyAddressBook deletes every seeded contact through the API.
func (s *contactSteps) emptyAddressBook(ctx context.Context) error {
	for {
		if err := s.tc.Do("GET", "/api/contacts?pageSize=100", nil); err != nil {
			return err
		}
		p, err := s.lastPage()
		if err != nil {
			return err
		}
		if len(p.Data) == 0 {
			return nil
		}
		for _, row := range p.Data {
			if err := s.tc.Do("DELETE", fmt.Sprintf("/api/contacts/%v", row["id"]), nil); err != nil {
				return err
			}
		}
	}
}

func (s *contactSteps) contactsExist(ctx context.Context, n int) error {
	if err := s.emptyAddressBook(ctx); err != nil {
		return err
	}
	for i := 1; i <= n; i++ {
		name := fmt.Sprintf("Name%02d", i)
		if err := s.createContact(ctx, name, "Surname", fmt.Sprintf("contact%02d@example.com", i)); err != nil {
			return err
		}
		if status := s.tc.GetLastResponseStatus(); status != 201 {
			return fmt.Errorf("create contact %d: status %d", i, status)
		}
	}
	return nil
}

func (s *contactSteps) createContact(ctx context.Context, name, surname, email string) error {
	return s.tc.Do("POST", "/api/contacts", map[string]string{
		"name":    name,
		"surname": surname,
		"phone":   "+39 06 0000000",
		"email":   email,
		"address": "Via Roma 1, Roma",
	})
}

func (s *contactSteps) saveContactID(ctx context.Context, name string) error {
	raw, err := s.tc.GetResponseField("id")
	if err != nil {
		return err
	}
	id, ok := raw.(float64)
	if !ok {
		return fmt.Errorf("id is not a number: %v", raw)
	}
	s.tc.SaveID(name, int64(id))
	return nil
}

func (s *contactSteps) renameContact(ctx context.Context, name, newName string) error {
	id, ok := s.tc.SavedID(name)
	if !ok {
		return fmt.Errorf("no saved contact %q", name)
	}
	return s.tc.Do("PUT", fmt.Sprintf("/api/contacts/%d", id), map[string]string{
		"name":    newName,
		"surname": "Rossi",
		"phone":   "+39 06 0000000",
		"email":   "renamed@example.com",
		"address": "Via Roma 1, Roma",
	})
}

func (s *contactSteps) deleteContact(ctx context.Context, name string) error {
	id, ok := s.tc.SavedID(name)
	if !ok {
		return fmt.Errorf("no saved contact %q", name)
	}
	return s.tc.Do("DELETE", fmt.Sprintf("/api/contacts/%d", id), nil)
}

func (s *contactSteps) pageShouldHold(ctx context.Context, rows int, total int64) error {
	p, err := s.lastPage()
	if err != nil {
		return err
	}
	if len(p.Data) != rows || p.Total != total {
		return fmt.Errorf("expected %d rows with total %d, got %d rows with total %d", rows, total, len(p.Data), p.Total)
	}
	return nil
}

func (s *contactSteps) firstRowFieldShouldEqual(ctx context.Context, field, want string) error {
	p, err := s.lastPage()
	if err != nil {
		return err
	}
	if len(p.Data) == 0 {
		return fmt.Errorf("page is empty")
	}
	if got := fmt.Sprint(p.Data[0][field]); got != want {
		return fmt.Errorf("first row %s: expected %s but got %s", field, want, got)
	}
	return nil
}
