package domain

// TokenPair is what the auth endpoints hand back: a signed access token and
// a signed refresh token. Both are JWTs; neither is stored server-side.
type TokenPair struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}
