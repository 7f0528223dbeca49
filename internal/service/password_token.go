package service

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base32"
	"encoding/base64"
	"fmt"
	"math"
	"quizfy_backend/internal/model"
	"quizfy_backend/internal/util"
	"strconv"
	"strings"
	"time"
)

var tokenSalt = []byte("quizfy.service.password_token")

// PasswordTokenGenerator issues single-use password reset tokens. A token
// stops verifying once the password or last login of the user changes.
type PasswordTokenGenerator struct {
	secret      string
	timeoutDays int
	Now         func() time.Time
}

func NewPasswordTokenGenerator(secret string, timeoutDays int) *PasswordTokenGenerator {
	if timeoutDays <= 0 {
		timeoutDays = 3
	}
	return &PasswordTokenGenerator{secret: secret, timeoutDays: timeoutDays, Now: time.Now}
}

func EncodeUID(id uint) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatUint(uint64(id), 10)))
}

func DecodeUID(uid string) (uint, error) {
	raw, err := base64.RawURLEncoding.DecodeString(uid)
	if err != nil {
		return 0, util.ErrInvalidResetLink
	}
	id, err := strconv.ParseUint(string(raw), 10, 32)
	if err != nil || id == 0 {
		return 0, util.ErrInvalidResetLink
	}
	return uint(id), nil
}

func (g *PasswordTokenGenerator) Make(user *model.User) string {
	return g.makeWithTimestamp(user, daysSince2001(g.Now()))
}

func (g *PasswordTokenGenerator) Verify(user *model.User, token string) error {
	parts := strings.SplitN(token, "-", 2)
	if len(parts) != 2 {
		return util.ErrInvalidResetLink
	}
	data, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(parts[0])
	if err != nil {
		return util.ErrInvalidResetLink
	}
	ts, err := strconv.Atoi(string(data))
	if err != nil {
		return util.ErrInvalidResetLink
	}

	expected := g.makeWithTimestamp(user, ts)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(token)) == 0 {
		return util.ErrInvalidResetLink
	}
	if daysSince2001(g.Now())-ts > g.timeoutDays {
		return util.ErrInvalidResetLink
	}
	return nil
}

func (g *PasswordTokenGenerator) makeWithTimestamp(user *model.User, ts int) string {
	tsB32 := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString([]byte(strconv.Itoa(ts)))
	return fmt.Sprintf("%s-%s", tsB32, g.sign(hashValue(user, ts)))
}

func (g *PasswordTokenGenerator) sign(val []byte) string {
	key := sha256.Sum256(append(append([]byte{}, tokenSalt...), g.secret...))
	h := hmac.New(sha256.New, key[:])
	h.Write(val)
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

func daysSince2001(t time.Time) int {
	ref := time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)
	return int(math.Floor(t.Sub(ref).Hours() / 24))
}

func hashValue(user *model.User, ts int) []byte {
	var val bytes.Buffer
	val.WriteString(strconv.FormatUint(uint64(user.ID), 10))
	val.WriteString(user.Password)
	if user.LastLogin != nil {
		val.WriteString(user.LastLogin.UTC().Truncate(time.Second).Format(time.RFC3339))
	}
	val.WriteString(user.Email)
	val.WriteString(strconv.Itoa(ts))
	return val.Bytes()
}
