package tokenx

// Accepted header values. Only RS256 session tokens in the formats we mint
// are "could be one of ours"; everything else is rejected before signature
// verification.
const (
	AlgRS256 = "RS256"
	TypJWT   = "JWT"

	// VersionStatic is the legacy format: every token is signed with the
	// current core key and carries no kid, so verification has to try each
	// candidate key in turn.
	VersionStatic = 2

	// VersionKeyed is the current format: the header names the signing key
	// via kid, letting verification go straight to the right key during
	// rotation overlap.
	VersionKeyed = 3
)

// recognizeHeader checks a decoded header against the fixed accepted set and
// extracts the format version and (for keyed tokens) the kid. Anything that
// doesn't match exactly is an unrecognized header, never a crypto error.
func recognizeHeader(header map[string]any) (version int, kid string, err error) {
	alg, _ := header["alg"].(string)
	typ, _ := header["typ"].(string)
	if alg != AlgRS256 || typ != TypJWT {
		return 0, "", ErrUnrecognizedHeader
	}

	switch ver, _ := header["version"].(string); ver {
	case "2":
		version = VersionStatic
	case "3":
		version = VersionKeyed
	default:
		return 0, "", ErrUnrecognizedHeader
	}

	if version >= VersionKeyed {
		kid, _ = header["kid"].(string)
		if kid == "" {
			return 0, "", ErrUnrecognizedHeader
		}
	}

	return version, kid, nil
}
