package router

import (
	"strings"

	"chatdesk/internal/domain"
)

const (
	DefaultContainer      = "uploads"
	DefaultHRContainer    = "hrdocs"
	DefaultLegalContainer = "legaldocs"
	DefaultL1Container    = "l1docs"
	DefaultL2Container    = "l2docs"
)

// ContainerMap maps a storage domain to a container name.
type ContainerMap struct {
	Default string
	HR      string
	Legal   string
	L1      string
	L2      string
}

// DefaultContainers returns the built-in container names.
func DefaultContainers() ContainerMap {
	return ContainerMap{
		Default: DefaultContainer,
		HR:      DefaultHRContainer,
		Legal:   DefaultLegalContainer,
		L1:      DefaultL1Container,
		L2:      DefaultL2Container,
	}
}

// ContainerFor resolves domainName case-insensitively. Anything other than
// hr, legal, l1 or l2 gets the default container, as does a known name
// whose container is blank.
func (m ContainerMap) ContainerFor(domainName string) string {
	var name string
	switch domain.Category(strings.ToLower(strings.TrimSpace(domainName))) {
	case domain.CategoryHR:
		name = m.HR
	case domain.CategoryLegal:
		name = m.Legal
	case domain.CategoryL1:
		name = m.L1
	case domain.CategoryL2:
		name = m.L2
	}
	if strings.TrimSpace(name) == "" {
		return m.defaultName()
	}
	return name
}

func (m ContainerMap) defaultName() string {
	if strings.TrimSpace(m.Default) == "" {
		return DefaultContainer
	}
	return m.Default
}
