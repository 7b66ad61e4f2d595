package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/stretchr/testify/assert"

	"github.com/doodlesbykumbi/lecture-eval/pkg/server/middleware"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte
	adminToken   string
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{tc: tc}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		s.adminToken = ""
		return ctx, s.tc.Reset()
	})

	// Background steps
	sc.Step(`^the evaluation API is running$`, s.theAPIIsRunning)
	sc.Step(`^I am an administrator$`, s.iAmAnAdministrator)
	sc.Step(`^I am anonymous$`, s.iAmAnonymous)
	sc.Step(`^a user "([^"]*)" with email "([^"]*)" is registered$`, s.aUserIsRegistered)
	sc.Step(`^a lecturer "([^"]*)" from "([^"]*)" exists$`, s.aLecturerExists)

	// Request steps
	sc.Step(`^I send a (GET|POST|PUT|DELETE) request to "([^"]*)"$`, s.iSendARequest)
	sc.Step(`^I send a (GET|POST|PUT|DELETE) request to "([^"]*)" with body:$`, s.iSendARequestWithBody)
	sc.Step(`^(\d+) users register concurrently$`, s.usersRegisterConcurrently)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response should be JSON:$`, s.theResponseShouldBeJSON)
	sc.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, s.theResponseFieldShouldBe)
	sc.Step(`^the response should be a list of (\d+) items?$`, s.theResponseShouldBeAListOf)

	// Database steps
	sc.Step(`^the "([^"]*)" table should have (\d+) rows?$`, s.theTableShouldHaveRows)
	sc.Step(`^the users table should have (\d+) distinct indexes$`, s.theUsersTableShouldHaveDistinctIndexes)
	sc.Step(`^the audit log should contain (\d+) "([^"]*)" messages?$`, s.theAuditLogShouldContain)
}

func (s *StepsContext) theAPIIsRunning() error {
	return waitForServer(s.tc.ServerURL, 5*time.Second)
}

func (s *StepsContext) iAmAnAdministrator() error {
	token, err := middleware.IssueAdminToken(AdminSecret, "integration", time.Hour, time.Now())
	if err != nil {
		return err
	}
	s.adminToken = token
	return nil
}

func (s *StepsContext) iAmAnonymous() error {
	s.adminToken = ""
	return nil
}

func (s *StepsContext) aUserIsRegistered(name, email string) error {
	body := fmt.Sprintf(`{"name": %q, "email": %q}`, name, email)
	if err := s.do(http.MethodPost, "/register", body); err != nil {
		return err
	}
	return s.theResponseStatusShouldBe(http.StatusOK)
}

func (s *StepsContext) aLecturerExists(name, department string) error {
	body := fmt.Sprintf(`{"name": %q, "department": %q}`, name, department)
	if err := s.do(http.MethodPost, "/lecturers", body); err != nil {
		return err
	}
	return s.theResponseStatusShouldBe(http.StatusOK)
}

func (s *StepsContext) iSendARequest(method, path string) error {
	return s.do(method, path, "")
}

func (s *StepsContext) iSendARequestWithBody(method, path string, body *godog.DocString) error {
	return s.do(method, path, body.Content)
}

func (s *StepsContext) do(method, path, body string) error {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, s.tc.ServerURL+path, reader)
	if err != nil {
		return err
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.adminToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.adminToken)
	}

	s.response, err = s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	s.responseBody, err = io.ReadAll(s.response.Body)
	_ = s.response.Body.Close()
	return err
}

func (s *StepsContext) usersRegisterConcurrently(n int) error {
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func(i int) {
			body := fmt.Sprintf(`{"name": "student %d", "email": "student%d@example.edu"}`, i, i)
			resp, err := s.tc.HTTPClient.Post(s.tc.ServerURL+"/register", "application/json", strings.NewReader(body))
			if err != nil {
				errs <- err
				return
			}
			_ = resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				errs <- fmt.Errorf("registration %d returned %d", i, resp.StatusCode)
				return
			}
			errs <- nil
		}(i)
	}
	for i := 0; i < n; i++ {
		if err := <-errs; err != nil {
			return err
		}
	}
	return nil
}

func (s *StepsContext) theResponseStatusShouldBe(code int) error {
	if s.response == nil {
		return fmt.Errorf("no request was sent")
	}
	if s.response.StatusCode != code {
		return fmt.Errorf("expected status %d, got %d: %s", code, s.response.StatusCode, s.responseBody)
	}
	return nil
}

func (s *StepsContext) theResponseShouldBeJSON(expected *godog.DocString) error {
	var want, got interface{}
	if err := json.Unmarshal([]byte(expected.Content), &want); err != nil {
		return fmt.Errorf("invalid expected JSON: %w", err)
	}
	if err := json.Unmarshal(s.responseBody, &got); err != nil {
		return fmt.Errorf("response is not JSON: %w (%s)", err, s.responseBody)
	}
	if !assert.ObjectsAreEqual(want, got) {
		return fmt.Errorf("expected %s, got %s", expected.Content, s.responseBody)
	}
	return nil
}

func (s *StepsContext) theResponseFieldShouldBe(field, expected string) error {
	var body map[string]interface{}
	if err := json.Unmarshal(s.responseBody, &body); err != nil {
		return fmt.Errorf("response is not a JSON object: %w", err)
	}
	if got := fmt.Sprint(body[field]); got != expected {
		return fmt.Errorf("expected %s to be %q, got %q", field, expected, got)
	}
	return nil
}

func (s *StepsContext) theResponseShouldBeAListOf(n int) error {
	var items []json.RawMessage
	if err := json.Unmarshal(s.responseBody, &items); err != nil {
		return fmt.Errorf("response is not a JSON array: %w", err)
	}
	if len(items) != n {
		return fmt.Errorf("expected %d items, got %d: %s", n, len(items), s.responseBody)
	}
	return nil
}

func (s *StepsContext) theTableShouldHaveRows(table string, n int) error {
	switch table {
	case "users", "lecturers", "evaluations":
	default:
		return fmt.Errorf("unknown table %q", table)
	}
	var count int64
	if err := s.tc.DB.Table(table).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(n) {
		return fmt.Errorf("expected %d rows in %s, got %d", n, table, count)
	}
	return nil
}

func (s *StepsContext) theUsersTableShouldHaveDistinctIndexes(n int) error {
	var count int64
	if err := s.tc.DB.Raw(`SELECT COUNT(DISTINCT user_index) FROM users`).Scan(&count).Error; err != nil {
		return err
	}
	if count != int64(n) {
		return fmt.Errorf("expected %d distinct indexes, got %d", n, count)
	}
	return nil
}

func (s *StepsContext) theAuditLogShouldContain(n int, msgID string) error {
	var count int64
	if err := s.tc.DB.Raw(`SELECT COUNT(*) FROM audit_messages WHERE msgid = ?`, msgID).Scan(&count).Error; err != nil {
		return err
	}
	if count != int64(n) {
		return fmt.Errorf("expected %d %q audit messages, got %d", n, msgID, count)
	}
	return nil
}
