package service_test

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskdeck/taskdeck/internal/taskapi/service"
	"github.com/taskdeck/taskdeck/internal/taskapi/store/drivers/sqlite"
	"github.com/taskdeck/taskdeck/pkg/cryptox"
	"github.com/taskdeck/taskdeck/pkg/jwtx"
)

type testEnv struct {
	Store *sqlite.Store
	Codec *jwtx.Codec
	Auth  *service.AuthService
	Users *service.UserService
	Tasks *service.TaskService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db")
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	codec, err := jwtx.NewCodec(jwtx.Config{
		AccessSecret:  strings.Repeat("a", 32),
		RefreshSecret: strings.Repeat("r", 32),
		Issuer:        "taskdeck-test",
		Audience:      []string{"taskdeck"},
	})
	require.NoError(t, err)

	// MinCost keeps the suite fast; production uses DefaultCost.
	hasher, err := cryptox.NewHasher(bcrypt.MinCost)
	require.NoError(t, err)

	return &testEnv{
		Store: st,
		Codec: codec,
		Auth:  &service.AuthService{Store: st, Codec: codec, Hasher: hasher},
		Users: &service.UserService{Store: st},
		Tasks: &service.TaskService{Store: st, Now: func() time.Time { return time.Now().UTC() }},
	}
}
