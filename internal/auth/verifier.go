package auth

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang-jwt/jwt/v5"
)

// Verifier valida os JWTs do provedor de identidade (quick-auth). O token
// carrega o endereço da carteira do jogador na claim "address"; é esse
// endereço, normalizado, que vira a identidade estável dentro do jogo.
type Verifier struct {
	issuer string
	domain string
	key    ed25519.PublicKey
	now    func() time.Time
}

// tokenClaims é o formato interno usado só no parse.
type tokenClaims struct {
	jwt.RegisteredClaims
	Address string `json:"address"`
}

// NewVerifier monta o verificador. O domain é conferido contra a audiência
// do token, amarrando o token a esta instalação do jogo.
func NewVerifier(issuer, domain string, key ed25519.PublicKey) *Verifier {
	return &Verifier{
		issuer: issuer,
		domain: domain,
		key:    key,
		now:    time.Now,
	}
}

// Verify valida a credencial e devolve o endereço do jogador em forma
// checksum. Qualquer falha vira ErrUnauthenticated.
func (v *Verifier) Verify(token string) (string, error) {
	var parsed tokenClaims
	_, err := jwt.ParseWithClaims(token, &parsed,
		func(t *jwt.Token) (any, error) { return v.key, nil },
		jwt.WithValidMethods([]string{"EdDSA"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.domain),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	if !common.IsHexAddress(parsed.Address) {
		return "", fmt.Errorf("%w: malformed address claim", ErrUnauthenticated)
	}

	// A forma checksum (EIP-55) é a identidade canônica: dois tokens do
	// mesmo dono sempre resolvem para a mesma string.
	return common.HexToAddress(parsed.Address).Hex(), nil
}

// ParsePublicKey decodifica a chave pública ed25519 configurada em base64.
func ParsePublicKey(encoded string) (ed25519.PublicKey, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode auth public key: %w", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("auth public key must be %d bytes, got %d", ed25519.PublicKeySize, len(raw))
	}
	return ed25519.PublicKey(raw), nil
}
