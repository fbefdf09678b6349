package project_test

import (
	"testing"

	"github.com/rpggio/workbench/internal/domain/project"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ListOrder(t *testing.T) {
	reg := project.NewDefaultRegistry()

	list := reg.List()
	require.Len(t, list, 4)
	require.Equal(t, []string{"ALPHA", "NEXUS", "ORBIT", "VAULT"}, reg.Codes())
	require.Equal(t, "Project Alpha", list[0].Name)

	list[0].Name = "mutated"
	require.Equal(t, "Project Alpha", reg.List()[0].Name)
}

func TestRegistry_LookupIgnoresCase(t *testing.T) {
	reg := project.NewDefaultRegistry()

	p, ok := reg.Lookup("nexus")
	require.True(t, ok)
	require.Equal(t, "NEXUS", p.Code)
	require.Equal(t, "API gateway and microservices migration", p.Description)

	_, ok = reg.Lookup("ZETA")
	require.False(t, ok)
	require.Empty(t, reg.Name("ZETA"))
}

func TestRegistry_Resolve(t *testing.T) {
	reg := project.NewDefaultRegistry()

	_, err := reg.Resolve("zeta")
	require.ErrorIs(t, err, project.ErrUnknownProject)
	require.Contains(t, err.Error(), "'zeta'")
	require.Contains(t, err.Error(), "ALPHA, NEXUS, ORBIT, VAULT")

	p, err := reg.Resolve(" vault ")
	require.NoError(t, err)
	require.Equal(t, "Project Vault", p.Name)
}
