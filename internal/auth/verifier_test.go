package auth

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	testIssuer  = "https://auth.example.test"
	testDomain  = "figgie.test"
	testAddress = "0x8ba1f109551bd432803012645ac136ddd64dba72"
	// A mesma carteira na forma checksum EIP-55.
	testAddressChecksum = "0x8ba1f109551bD432803012645Ac136ddd64DBA72"
)

type signerOpts struct {
	issuer   string
	audience string
	address  string
	expires  time.Time
}

func signToken(t *testing.T, key ed25519.PrivateKey, opts signerOpts) string {
	t.Helper()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    opts.issuer,
			Audience:  jwt.ClaimStrings{opts.audience},
			ExpiresAt: jwt.NewNumericDate(opts.expires),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Address: opts.address,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func newTestVerifier(t *testing.T) (*Verifier, ed25519.PrivateKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return NewVerifier(testIssuer, testDomain, pub), priv
}

func validOpts() signerOpts {
	return signerOpts{
		issuer:   testIssuer,
		audience: testDomain,
		address:  testAddress,
		expires:  time.Now().Add(time.Hour),
	}
}

func TestVerifyAcceptsValidToken(t *testing.T) {
	v, priv := newTestVerifier(t)

	address, err := v.Verify(signToken(t, priv, validOpts()))
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if address != testAddressChecksum {
		t.Fatalf("address = %s, want checksum form %s", address, testAddressChecksum)
	}
}

func TestVerifyRejections(t *testing.T) {
	v, priv := newTestVerifier(t)

	wrongIssuer := validOpts()
	wrongIssuer.issuer = "https://somewhere-else.test"

	wrongAudience := validOpts()
	wrongAudience.audience = "other-game.test"

	expired := validOpts()
	expired.expires = time.Now().Add(-time.Minute)

	badAddress := validOpts()
	badAddress.address = "not-a-wallet"

	cases := map[string]string{
		"wrong issuer":   signToken(t, priv, wrongIssuer),
		"wrong audience": signToken(t, priv, wrongAudience),
		"expired":        signToken(t, priv, expired),
		"bad address":    signToken(t, priv, badAddress),
		"garbage":        "definitely.not.ajwt",
	}

	for name, token := range cases {
		if _, err := v.Verify(token); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("%s: err = %v, want ErrUnauthenticated", name, err)
		}
	}
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	v, _ := newTestVerifier(t)
	_, otherPriv, _ := ed25519.GenerateKey(rand.Reader)

	if _, err := v.Verify(signToken(t, otherPriv, validOpts())); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("foreign key: err = %v, want ErrUnauthenticated", err)
	}
}

func TestServiceAdmitRequiresCurrentToken(t *testing.T) {
	v, priv := newTestVerifier(t)
	svc := NewService(v)

	first := signToken(t, priv, validOpts())

	// Antes de Authorize não existe token corrente registrado.
	if _, err := svc.Admit(first); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("admit before authorize: err = %v, want ErrUnauthenticated", err)
	}

	address, err := svc.Authorize(first)
	if err != nil {
		t.Fatalf("Authorize: %v", err)
	}
	if address != testAddressChecksum {
		t.Fatalf("Authorize address = %s, want %s", address, testAddressChecksum)
	}

	if _, err := svc.Admit(first); err != nil {
		t.Fatalf("admit with current token: %v", err)
	}

	// Um segundo Authorize substitui o token corrente; o antigo, ainda
	// criptograficamente válido, deixa de entrar.
	later := validOpts()
	later.expires = time.Now().Add(2 * time.Hour)
	second := signToken(t, priv, later)
	if _, err := svc.Authorize(second); err != nil {
		t.Fatalf("second Authorize: %v", err)
	}
	if _, err := svc.Admit(first); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("admit with stale token: err = %v, want ErrUnauthenticated", err)
	}
	if _, err := svc.Admit(second); err != nil {
		t.Fatalf("admit with new token: %v", err)
	}
}

func TestParsePublicKey(t *testing.T) {
	if _, err := ParsePublicKey("%%%"); err == nil {
		t.Fatal("ParsePublicKey accepted invalid base64")
	}
	if _, err := ParsePublicKey("aGVsbG8="); err == nil {
		t.Fatal("ParsePublicKey accepted a short key")
	}
}
