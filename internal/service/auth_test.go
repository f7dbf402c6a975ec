package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/giftable/giftable-server/internal/mocks"
	"github.com/giftable/giftable-server/internal/model"
	"github.com/giftable/giftable-server/internal/testutil"
	"github.com/giftable/giftable-server/internal/token"
)

func newAuthFixture() (*Auth, *mocks.UserStore, *mocks.KeyValueStore, *mocks.TokenCodec, *mocks.Mailer) {
	users := &mocks.UserStore{}
	sessions := &mocks.KeyValueStore{}
	codec := &mocks.TokenCodec{}
	mailer := &mocks.Mailer{}
	auth := NewAuth(users, sessions, codec, mailer, nil, "http://localhost", testutil.MakeNoopLogger())
	return auth, users, sessions, codec, mailer
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuth_Authenticate_EmptyToken(t *testing.T) {
	auth, _, sessions, codec, _ := newAuthFixture()

	_, err := auth.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, model.ErrUnauthenticated)

	codec.AssertNotCalled(t, "Validate", mock.Anything)
	sessions.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestAuth_Authenticate_InvalidTokenNeverReachesStore(t *testing.T) {
	// An expired or forged token must fail on the codec alone; a stale
	// session record must never rescue it.
	auth, _, sessions, codec, _ := newAuthFixture()

	codec.On("Validate", "bad-token").Return(model.AuthContext{}, model.ErrTokenInvalid)

	_, err := auth.Authenticate(context.Background(), "bad-token")
	assert.ErrorIs(t, err, model.ErrTokenInvalid)

	sessions.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestAuth_Authenticate_AbsentRecordTrustsToken(t *testing.T) {
	auth, _, sessions, codec, _ := newAuthFixture()
	ac := model.AuthContext{UserID: uuid.New(), Email: "user@example.com"}

	codec.On("Validate", "good-token").Return(ac, nil)
	sessions.On("Get", mock.Anything, "session:good-token").Return("", false)

	got, err := auth.Authenticate(context.Background(), "good-token")
	require.NoError(t, err)
	assert.Equal(t, ac, got)
}

func TestAuth_Authenticate_MatchingRecord(t *testing.T) {
	auth, _, sessions, codec, _ := newAuthFixture()
	ac := model.AuthContext{UserID: uuid.New()}

	codec.On("Validate", "good-token").Return(ac, nil)
	sessions.On("Get", mock.Anything, "session:good-token").Return(ac.UserID.String(), true)

	got, err := auth.Authenticate(context.Background(), "good-token")
	require.NoError(t, err)
	assert.Equal(t, ac, got)
}

func TestAuth_Authenticate_RevokedWinsOverValidToken(t *testing.T) {
	auth, _, sessions, codec, _ := newAuthFixture()

	codec.On("Validate", "revoked-token").Return(model.AuthContext{UserID: uuid.New()}, nil)
	sessions.On("Get", mock.Anything, "session:revoked-token").Return("revoked", true)

	_, err := auth.Authenticate(context.Background(), "revoked-token")
	assert.ErrorIs(t, err, model.ErrSessionRevoked)
}

func TestAuth_Authenticate_Mismatch(t *testing.T) {
	auth, _, sessions, codec, _ := newAuthFixture()

	codec.On("Validate", "stale-token").Return(model.AuthContext{UserID: uuid.New()}, nil)
	sessions.On("Get", mock.Anything, "session:stale-token").Return(uuid.NewString(), true)

	_, err := auth.Authenticate(context.Background(), "stale-token")
	assert.ErrorIs(t, err, model.ErrSessionMismatch)
}

func TestAuth_Authenticate_ExpiredAndRevoked(t *testing.T) {
	// Expiry is checked before revocation, so the caller learns the token
	// is invalid, not that the session was revoked.
	auth, _, sessions, codec, _ := newAuthFixture()

	codec.On("Validate", "expired-token").Return(model.AuthContext{}, model.ErrTokenInvalid)

	_, err := auth.Authenticate(context.Background(), "expired-token")
	assert.ErrorIs(t, err, model.ErrTokenInvalid)
	sessions.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestAuth_Login_Success(t *testing.T) {
	auth, users, sessions, codec, _ := newAuthFixture()
	user := model.User{ID: uuid.New(), Email: "user@example.com", PasswordHash: hashPassword(t, "password123")}

	users.On("GetByEmail", mock.Anything, "user@example.com").Return(user, nil)
	codec.On("Issue", model.AuthContext{UserID: user.ID, Email: user.Email}).Return("issued-token", nil)
	sessions.On("Set", mock.Anything, "session:issued-token", user.ID.String(), token.Lifetime).Return()

	tokenString, got, err := auth.Login(context.Background(), "User@Example.com ", "password123")
	require.NoError(t, err)
	assert.Equal(t, "issued-token", tokenString)
	assert.Equal(t, user, got)
	sessions.AssertExpectations(t)
}

func TestAuth_Login_UnknownEmail(t *testing.T) {
	auth, users, _, _, _ := newAuthFixture()

	users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(model.User{}, model.ErrNotFound)

	_, _, err := auth.Login(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestAuth_Login_WrongPassword(t *testing.T) {
	auth, users, _, _, _ := newAuthFixture()
	user := model.User{ID: uuid.New(), Email: "user@example.com", PasswordHash: hashPassword(t, "correct")}

	users.On("GetByEmail", mock.Anything, "user@example.com").Return(user, nil)

	_, _, err := auth.Login(context.Background(), "user@example.com", "wrong")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestAuth_Register_FirstAccountBecomesAdmin(t *testing.T) {
	auth, users, sessions, codec, _ := newAuthFixture()

	users.On("CountAdmins", mock.Anything).Return(0, nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.Email == "first@example.com" && u.IsAdmin
	})).Return(model.User{ID: uuid.New(), Email: "first@example.com", IsAdmin: true}, nil)
	codec.On("Issue", mock.Anything).Return("t", nil)
	sessions.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()

	_, user, err := auth.Register(context.Background(), "first@example.com", "password123")
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)
}

func TestAuth_Register_SecondAccountIsNotAdmin(t *testing.T) {
	auth, users, sessions, codec, _ := newAuthFixture()

	users.On("CountAdmins", mock.Anything).Return(1, nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return !u.IsAdmin
	})).Return(model.User{ID: uuid.New(), Email: "second@example.com"}, nil)
	codec.On("Issue", mock.Anything).Return("t", nil)
	sessions.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()

	_, user, err := auth.Register(context.Background(), "second@example.com", "password123")
	require.NoError(t, err)
	assert.False(t, user.IsAdmin)
}

func TestAuth_Register_AllowListedEmailBecomesAdmin(t *testing.T) {
	users := &mocks.UserStore{}
	sessions := &mocks.KeyValueStore{}
	codec := &mocks.TokenCodec{}
	auth := NewAuth(users, sessions, codec, &mocks.Mailer{}, []string{"boss@example.com"}, "http://localhost", testutil.MakeNoopLogger())

	users.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.IsAdmin
	})).Return(model.User{ID: uuid.New(), Email: "boss@example.com", IsAdmin: true}, nil)
	codec.On("Issue", mock.Anything).Return("t", nil)
	sessions.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()

	_, user, err := auth.Register(context.Background(), "Boss@Example.com", "password123")
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)
	users.AssertNotCalled(t, "CountAdmins", mock.Anything)
}

func TestAuth_Register_EmailTaken(t *testing.T) {
	auth, users, _, _, _ := newAuthFixture()

	users.On("CountAdmins", mock.Anything).Return(1, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(model.User{}, model.ErrEmailTaken)

	_, _, err := auth.Register(context.Background(), "taken@example.com", "password123")
	assert.ErrorIs(t, err, model.ErrEmailTaken)
}

func TestAuth_Logout_WritesRevokedSentinel(t *testing.T) {
	auth, _, sessions, _, _ := newAuthFixture()

	sessions.On("Delete", mock.Anything, "session:tok").Return()
	sessions.On("Set", mock.Anything, "session:tok", "revoked", token.Lifetime).Return()

	auth.Logout(context.Background(), "tok")
	sessions.AssertExpectations(t)
}

func TestAuth_Logout_EmptyTokenIsNoop(t *testing.T) {
	auth, _, sessions, _, _ := newAuthFixture()

	auth.Logout(context.Background(), "")

	sessions.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	sessions.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuth_Logout_Idempotent(t *testing.T) {
	auth, _, sessions, _, _ := newAuthFixture()

	sessions.On("Delete", mock.Anything, "session:tok").Return().Twice()
	sessions.On("Set", mock.Anything, "session:tok", "revoked", token.Lifetime).Return().Twice()

	auth.Logout(context.Background(), "tok")
	auth.Logout(context.Background(), "tok")
	sessions.AssertExpectations(t)
}

func TestAuth_IssueResetToken(t *testing.T) {
	auth, _, sessions, _, _ := newAuthFixture()
	userID := uuid.New()

	var storedKey string
	sessions.On("Set", mock.Anything, mock.MatchedBy(func(key string) bool {
		storedKey = key
		return len(key) == len("reset:")+64
	}), userID.String(), resetTokenTTL).Return()

	resetToken, err := auth.IssueResetToken(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, resetToken, 64)
	assert.Equal(t, "reset:"+resetToken, storedKey)
}

func TestAuth_ConsumeResetToken_SingleUse(t *testing.T) {
	auth, _, sessions, _, _ := newAuthFixture()
	userID := uuid.New()

	sessions.On("GetDelete", mock.Anything, "reset:tok").Return(userID.String(), true).Once()
	sessions.On("GetDelete", mock.Anything, "reset:tok").Return("", false)

	got, err := auth.ConsumeResetToken(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	_, err = auth.ConsumeResetToken(context.Background(), "tok")
	assert.ErrorIs(t, err, model.ErrResetTokenInvalid)
}

func TestAuth_ConsumeResetToken_GarbageValue(t *testing.T) {
	auth, _, sessions, _, _ := newAuthFixture()

	sessions.On("GetDelete", mock.Anything, "reset:tok").Return("not-a-uuid", true)

	_, err := auth.ConsumeResetToken(context.Background(), "tok")
	assert.ErrorIs(t, err, model.ErrResetTokenInvalid)
}

func TestAuth_RequestPasswordReset_UnknownEmail(t *testing.T) {
	auth, users, sessions, _, mailer := newAuthFixture()

	users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(model.User{}, model.ErrNotFound)

	resetURL, err := auth.RequestPasswordReset(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, resetURL)

	sessions.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mailer.AssertNotCalled(t, "SendPasswordReset", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuth_RequestPasswordReset_SendsMail(t *testing.T) {
	auth, users, sessions, _, mailer := newAuthFixture()
	user := model.User{ID: uuid.New(), Email: "user@example.com"}

	users.On("GetByEmail", mock.Anything, "user@example.com").Return(user, nil)
	sessions.On("Set", mock.Anything, mock.Anything, user.ID.String(), resetTokenTTL).Return()
	mailer.On("SendPasswordReset", mock.Anything, "user@example.com", mock.Anything).Return(nil)

	resetURL, err := auth.RequestPasswordReset(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.Contains(t, resetURL, "http://localhost/reset-password?token=")
	mailer.AssertExpectations(t)
}

func TestAuth_RequestPasswordReset_MailFailureIsNotFatal(t *testing.T) {
	auth, users, sessions, _, mailer := newAuthFixture()
	user := model.User{ID: uuid.New(), Email: "user@example.com"}

	users.On("GetByEmail", mock.Anything, "user@example.com").Return(user, nil)
	sessions.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()
	mailer.On("SendPasswordReset", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	resetURL, err := auth.RequestPasswordReset(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, resetURL)
}

func TestAuth_ResetPassword_Success(t *testing.T) {
	auth, users, sessions, _, _ := newAuthFixture()
	userID := uuid.New()

	sessions.On("GetDelete", mock.Anything, "reset:tok").Return(userID.String(), true)
	users.On("UpdatePassword", mock.Anything, userID, mock.MatchedBy(func(hash string) bool {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte("newpassword")) == nil
	})).Return(nil)

	err := auth.ResetPassword(context.Background(), "tok", "newpassword")
	require.NoError(t, err)
	users.AssertExpectations(t)
}

func TestAuth_ResetPassword_InvalidToken(t *testing.T) {
	auth, users, sessions, _, _ := newAuthFixture()

	sessions.On("GetDelete", mock.Anything, "reset:tok").Return("", false)

	err := auth.ResetPassword(context.Background(), "tok", "newpassword")
	assert.ErrorIs(t, err, model.ErrResetTokenInvalid)
	users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuth_ResetPassword_UserGone(t *testing.T) {
	// The account was deleted between token issue and redemption. The
	// caller sees the same generic failure as for a bad token.
	auth, users, sessions, _, _ := newAuthFixture()
	userID := uuid.New()

	sessions.On("GetDelete", mock.Anything, "reset:tok").Return(userID.String(), true)
	users.On("UpdatePassword", mock.Anything, userID, mock.Anything).Return(model.ErrNotFound)

	err := auth.ResetPassword(context.Background(), "tok", "newpassword")
	assert.ErrorIs(t, err, model.ErrResetTokenInvalid)
}

func TestAuth_ResetURL_TrimsTrailingSlash(t *testing.T) {
	auth := NewAuth(&mocks.UserStore{}, &mocks.KeyValueStore{}, &mocks.TokenCodec{}, &mocks.Mailer{}, nil, "https://giftable.app/", testutil.MakeNoopLogger())

	assert.Equal(t, "https://giftable.app/reset-password?token=abc", auth.ResetURL("abc"))
}
