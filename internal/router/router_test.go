package router

import (
	"testing"

	"github.com/stretchr/testify/require"

	"chatdesk/internal/domain"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		text string
		want domain.Category
	}{
		{"hr keyword", "What is my salary band?", domain.CategoryHR},
		{"hr case insensitive", "BENEFITS enrollment", domain.CategoryHR},
		{"legal keyword", "Please review this NDA", domain.CategoryLegal},
		{"l1 keyword", "I want to file a ticket", domain.CategoryL1},
		{"no keyword", "How do I configure the VPN?", domain.CategoryL2},
		{"empty", "", domain.CategoryL2},
		{"hr beats legal", "contract question about my salary", domain.CategoryHR},
		{"legal beats l1", "compliance incident report", domain.CategoryLegal},
		{"substring match", "three questions", domain.CategoryHR},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Classify(tc.text))
		})
	}
}

func TestClassify_L1OnlyWithoutHigherPriorityKeywords(t *testing.T) {
	for _, text := range []string{"bug in the app", "open issue", "major incident", "ticket #12"} {
		require.Equal(t, domain.CategoryL1, Classify(text), text)
	}
}

func TestClassifyMessages_JoinsAllContents(t *testing.T) {
	msgs := []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "hello"},
		{Role: domain.RoleAssistant, Content: "hi, how can I help"},
		{Role: domain.RoleUser, Content: "there is a bug"},
	}
	require.Equal(t, domain.CategoryL1, ClassifyMessages(msgs))
	require.Equal(t, domain.CategoryL2, ClassifyMessages(nil))
}

func TestContainerFor(t *testing.T) {
	m := DefaultContainers()
	cases := []struct {
		in   string
		want string
	}{
		{"auto", "uploads"},
		{"", "uploads"},
		{"hr", "hrdocs"},
		{"HR", "hrdocs"},
		{" Legal ", "legaldocs"},
		{"l1", "l1docs"},
		{"L2", "l2docs"},
		{"finance", "uploads"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, m.ContainerFor(tc.in), "domain=%q", tc.in)
	}
}

func TestContainerFor_Overrides(t *testing.T) {
	m := ContainerMap{Default: "inbox", HR: "people", Legal: "", L1: "support", L2: "eng"}
	require.Equal(t, "people", m.ContainerFor("hr"))
	require.Equal(t, "inbox", m.ContainerFor("legal"))
	require.Equal(t, "inbox", m.ContainerFor("auto"))

	require.Equal(t, DefaultContainer, ContainerMap{}.ContainerFor("hr"))
}
