package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/haunt/internal/model"
)

type CLISuite struct {
	suite.Suite
	prefs string
}

func (s *CLISuite) SetupTest() {
	s.prefs = filepath.Join(s.T().TempDir(), "prefs.db")
	s.T().Setenv("HAUNT_STORAGE_TYPE", "sqlite")
	s.T().Setenv("HAUNT_PREFS_PATH", s.prefs)
	s.T().Setenv("HAUNT_PROVIDER_ACCOUNTS", "FB123=Vex/FB_998877")
	s.T().Setenv("HAUNT_PROVIDER_USER", "")
	s.T().Setenv("HAUNT_OUTPUT", "")
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

func (s *CLISuite) run(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := Run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func (s *CLISuite) runJSON(target any, args ...string) int {
	code, stdout, stderr := s.run(append(args, "-o", "json")...)
	if code == 0 {
		s.Require().NoError(json.Unmarshal([]byte(stdout), target), "stdout: %s stderr: %s", stdout, stderr)
	}
	return code
}

func (s *CLISuite) TestGuestLoginIsRemembered() {
	var created Identity
	s.Require().Equal(0, s.runJSON(&created, "login", "guest", "--name", "Shadow"))
	s.Equal("Shadow", created.PlayerName)
	s.Len(created.PlayerID, model.GuestIDLength)
	s.Equal("guest", created.Provider)
	s.Equal("logged_in", created.State)

	var current Identity
	s.Require().Equal(0, s.runJSON(&current, "whoami"))
	s.Equal(created, current)
}

func (s *CLISuite) TestWhoamiWhenLoggedOut() {
	code, _, stderr := s.run("whoami", "-o", "json")
	s.Equal(exitNotLoggedIn, code)

	var body struct {
		Error CLIError `json:"error"`
	}
	s.Require().NoError(json.Unmarshal([]byte(stderr), &body))
	s.Equal(CodeNotLoggedIn, body.Error.Code)
}

func (s *CLISuite) TestTextOutput() {
	code, stdout, _ := s.run("login", "guest", "--name", "Shadow")
	s.Require().Equal(0, code)
	s.Contains(stdout, "Player: Shadow (")
	s.Contains(stdout, "Provider: guest")
	s.Contains(stdout, "State: logged_in")
}

func (s *CLISuite) TestShortNameIsRejected() {
	code, stdout, stderr := s.run("login", "guest", "--name", "Al")
	s.Equal(exitFailure, code)
	s.Empty(stdout)
	s.Contains(stderr, "out of bounds")

	code, _, _ = s.run("whoami")
	s.Equal(exitNotLoggedIn, code)
}

func (s *CLISuite) TestSecondLoginRequiresLogout() {
	code, _, _ := s.run("login", "guest", "--name", "Shadow")
	s.Require().Equal(0, code)

	code, _, stderr := s.run("login", "guest", "--name", "Wraith")
	s.Equal(exitFailure, code)
	s.Contains(stderr, "operation not valid")
}

func (s *CLISuite) TestLogoutForgetsPlayer() {
	code, _, _ := s.run("login", "guest", "--name", "Shadow")
	s.Require().Equal(0, code)

	code, stdout, _ := s.run("logout")
	s.Equal(0, code)
	s.Contains(stdout, "Logged out Shadow")

	code, _, _ = s.run("whoami")
	s.Equal(exitNotLoggedIn, code)

	code, stdout, _ = s.run("logout")
	s.Equal(0, code)
	s.Contains(stdout, "Not logged in")
}

func (s *CLISuite) TestProviderLoginExistingAccount() {
	var rec Identity
	s.Require().Equal(0, s.runJSON(&rec, "login", "provider", "--provider-user", "FB123"))
	s.Equal("Vex", rec.PlayerName)
	s.Equal("FB_998877", rec.PlayerID)
	s.Equal("social", rec.Provider)
}

func (s *CLISuite) TestProviderLoginNewAccountNeedsName() {
	code, _, stderr := s.run("login", "provider", "--provider-user", "FB456")
	s.Equal(exitUsage, code)
	s.Contains(stderr, "--name is required")

	var rec Identity
	s.Require().Equal(0, s.runJSON(&rec, "login", "provider", "--provider-user", "FB456", "--name", "Nyx_77"))
	s.Equal("Nyx_77", rec.PlayerName)
	s.Regexp(`^FB_\d{6}$`, rec.PlayerID)
	s.Equal("social", rec.Provider)
}

func (s *CLISuite) TestProviderLoginWithoutUserFails() {
	code, _, stderr := s.run("login", "provider", "-o", "json")
	s.Equal(exitFailure, code)
	s.Contains(stderr, CodeProviderLoginFail)
}

func (s *CLISuite) TestStartUsesScene() {
	code, _, _ := s.run("start")
	s.Equal(exitNotLoggedIn, code)

	code, _, _ = s.run("login", "guest", "--name", "Shadow")
	s.Require().Equal(0, code)

	var launch Launch
	s.Require().Equal(0, s.runJSON(&launch, "start"))
	s.Equal("Lobby", launch.Scene)
	s.Equal("Shadow", launch.Identity.PlayerName)
	s.NotEmpty(launch.SessionID)

	s.Require().Equal(0, s.runJSON(&launch, "start", "--scene", "Crypt"))
	s.Equal("Crypt", launch.Scene)
}

func (s *CLISuite) TestMemoryStorageIsPerProcess() {
	code, _, _ := s.run("--storage", "memory", "login", "guest", "--name", "Shadow")
	s.Require().Equal(0, code)

	// memory storage does not outlive the process
	code, _, _ = s.run("--storage", "memory", "whoami")
	s.Equal(exitNotLoggedIn, code)
}

func (s *CLISuite) TestProfilesKeepSeparatePlayers() {
	code, _, _ := s.run("--profile", "alice", "login", "guest", "--name", "Shadow")
	s.Require().Equal(0, code)

	code, _, _ = s.run("whoami")
	s.Equal(exitNotLoggedIn, code)

	var rec Identity
	s.Require().Equal(0, s.runJSON(&rec, "--profile", "alice", "whoami"))
	s.Equal("Shadow", rec.PlayerName)
}

func (s *CLISuite) TestInvalidOutputFormat() {
	code, _, stderr := s.run("whoami", "-o", "yaml")
	s.Equal(exitUsage, code)
	s.Contains(stderr, "output must be")
}

func (s *CLISuite) TestMalformedEnvironment() {
	s.T().Setenv("HAUNT_MAX_NAME_LENGTH", "twelve")
	code, _, stderr := s.run("whoami")
	s.Equal(exitFailure, code)
	s.Contains(stderr, "parse env")
}

func TestToCLIError(t *testing.T) {
	tests := []struct {
		err  error
		code string
		exit int
	}{
		{errNotLoggedIn, CodeNotLoggedIn, exitNotLoggedIn},
		{fmt.Errorf("%w: bad flag", errUsage), CodeUsage, exitUsage},
		{errNameRequired, CodeNameRequired, exitUsage},
		{fmt.Errorf("%w: got 2", model.ErrInvalidNameLength), CodeInvalidNameLength, exitFailure},
		{fmt.Errorf("%w: %q", model.ErrNameUnavailable, "Shadow"), CodeNameUnavailable, exitFailure},
		{model.ErrInvalidState, CodeInvalidState, exitFailure},
		{fmt.Errorf("%w: %w", model.ErrProviderLoginFailed, errors.New("timeout")), CodeProviderLoginFail, exitFailure},
		{fmt.Errorf("%w: disk", model.ErrStorageUnavailable), CodeStorageUnavailable, exitFailure},
		{errors.New("boom"), CodeInternalError, exitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			ce := toCLIError(tt.err)
			if ce.Code != tt.code {
				t.Errorf("Code = %s, want %s", ce.Code, tt.code)
			}
			if ce.exit != tt.exit {
				t.Errorf("exit = %d, want %d", ce.exit, tt.exit)
			}
			if ce.Message != tt.err.Error() && tt.code != CodeNotLoggedIn {
				t.Errorf("Message = %q, want %q", ce.Message, tt.err.Error())
			}
		})
	}
}
