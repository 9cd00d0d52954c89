package paymentservice

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// signatureTolerance bounds the age of a signed payload. Stale signatures are
// rejected to keep a captured webhook from being replayed indefinitely.
const signatureTolerance = 5 * time.Minute

var (
	errMalformedSignature = errors.New("malformed signature header")
	errStaleSignature     = errors.New("signature timestamp outside tolerance")
	errNoMatchingSig      = errors.New("no matching signature")
)

// verifySignature checks the provider's signing scheme: the header carries a
// unix timestamp and one or more HMAC-SHA256 signatures over
// "<timestamp>.<payload>" keyed with the shared endpoint secret.
func (s *Service) verifySignature(payload []byte, header string) error {
	var (
		timestamp  string
		signatures [][]byte
	)

	for _, element := range strings.Split(header, ",") {
		parts := strings.SplitN(strings.TrimSpace(element), "=", 2)
		if len(parts) != 2 {
			return errMalformedSignature
		}

		switch parts[0] {
		case "t":
			timestamp = parts[1]
		case "v1":
			sig, err := hex.DecodeString(parts[1])
			if err != nil {
				return errMalformedSignature
			}

			signatures = append(signatures, sig)
		}
	}

	if timestamp == "" || len(signatures) == 0 {
		return errMalformedSignature
	}

	unix, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return errMalformedSignature
	}

	age := s.now().Sub(time.Unix(unix, 0))
	if age > signatureTolerance || age < -signatureTolerance {
		return errStaleSignature
	}

	mac := hmac.New(sha256.New, s.endpointSecret)
	fmt.Fprintf(mac, "%s.", timestamp)
	mac.Write(payload)
	expected := mac.Sum(nil)

	for _, sig := range signatures {
		if hmac.Equal(sig, expected) {
			return nil
		}
	}

	return errNoMatchingSig
}

// SignPayload builds a signature header for the payload the way the provider
// would. Used by tests and local tooling.
func SignPayload(secret string, at time.Time, payload []byte) string {
	timestamp := strconv.FormatInt(at.Unix(), 10)

	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s.", timestamp)
	mac.Write(payload)

	return fmt.Sprintf("t=%s,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil)))
}
