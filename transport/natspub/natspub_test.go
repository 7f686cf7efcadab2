package natspub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dserrors "github.com/c360/dashsync/errors"
)

func TestSubjectMapping(t *testing.T) {
	p, err := New(DefaultConfig("nats://localhost:4222"))
	require.NoError(t, err)

	tests := []struct {
		route   string
		subject string
	}{
		{route: "/demo", subject: "dashsync.page.demo"},
		{route: "/sales/q3", subject: "dashsync.page.sales.q3"},
		{route: "demo", subject: "dashsync.page.demo"},
		{route: "/", subject: "dashsync.page._root"},
		{route: "", subject: "dashsync.page._root"},
		{route: "/a b", subject: "dashsync.page.a_b"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.subject, p.Subject(tc.route), "route %q", tc.route)
	}
}

func TestSubjectMapping_CustomPrefix(t *testing.T) {
	cfg := DefaultConfig("nats://localhost:4222")
	cfg.SubjectPrefix = "render.sync"
	p, err := New(cfg)
	require.NoError(t, err)

	assert.Equal(t, "render.sync.demo", p.Subject("/demo"))
}

func TestNew_RequiresURL(t *testing.T) {
	p, err := New(Config{})
	assert.Nil(t, p)
	assert.ErrorIs(t, err, dserrors.ErrMissingConfig)
}
