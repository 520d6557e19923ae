package services

import (
	"crypto/tls"
	"errors"
	"fmt"

	"github.com/go-ldap/ldap/v3"
	"github.com/teamflow/backend/internal/config"
)

// LDAPService authenticates users against an enterprise directory. It is
// optional; when disabled only local auth is available.
type LDAPService struct {
	cfg *config.LDAPConfig
}

// LDAPUser carries the directory attributes synced onto the shadow account.
type LDAPUser struct {
	Username    string
	Email       string
	DisplayName string
}

func NewLDAPService(cfg *config.LDAPConfig) *LDAPService {
	return &LDAPService{cfg: cfg}
}

func (s *LDAPService) IsEnabled() bool {
	return s.cfg != nil && s.cfg.Enabled
}

func (s *LDAPService) connect() (*ldap.Conn, error) {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	if s.cfg.UseSSL {
		return ldap.DialTLS("tcp", addr, &tls.Config{ServerName: s.cfg.Host})
	}
	return ldap.Dial("tcp", addr)
}

// Authenticate verifies the user's directory credentials: service bind,
// search by the configured filter, then bind as the found entry.
func (s *LDAPService) Authenticate(username, password string) (*LDAPUser, error) {
	if !s.IsEnabled() {
		return nil, errors.New("ldap authentication is not enabled")
	}
	if password == "" {
		return nil, errors.New("empty password")
	}

	conn, err := s.connect()
	if err != nil {
		return nil, fmt.Errorf("ldap connection failed: %w", err)
	}
	defer conn.Close()

	if s.cfg.BindDN != "" {
		if err := conn.Bind(s.cfg.BindDN, s.cfg.BindPassword); err != nil {
			return nil, fmt.Errorf("ldap service bind failed: %w", err)
		}
	}

	filter := fmt.Sprintf(s.cfg.UserFilter, ldap.EscapeFilter(username))
	searchReq := ldap.NewSearchRequest(
		s.cfg.BaseDN,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 1, 0, false,
		filter,
		[]string{"dn", "uid", "mail", "cn", "displayName"},
		nil,
	)

	result, err := conn.Search(searchReq)
	if err != nil {
		return nil, fmt.Errorf("ldap search failed: %w", err)
	}
	if len(result.Entries) == 0 {
		return nil, errors.New("user not found in directory")
	}

	entry := result.Entries[0]
	if err := conn.Bind(entry.DN, password); err != nil {
		return nil, errors.New("invalid directory credentials")
	}

	displayName := entry.GetAttributeValue("displayName")
	if displayName == "" {
		displayName = entry.GetAttributeValue("cn")
	}
	if displayName == "" {
		displayName = username
	}

	return &LDAPUser{
		Username:    username,
		Email:       entry.GetAttributeValue("mail"),
		DisplayName: displayName,
	}, nil
}
