package hash_test

import (
	"testing"

	"github.com/ErlanBelekov/chat-auth-service/internal/hash"
)

func TestHash_SameInputDifferentDigests(t *testing.T) {
	h := hash.New()

	first, err := h.Hash("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := h.Hash("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if first == second {
		t.Error("two hashes of the same input are identical; salt is not random per call")
	}
	if first == "secret" {
		t.Error("digest equals the plaintext")
	}
}

func TestVerify_RoundTrip(t *testing.T) {
	h := hash.New()

	digest, err := h.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if !h.Verify("correct horse battery staple", digest) {
		t.Error("correct secret did not verify")
	}
	if h.Verify("wrong secret", digest) {
		t.Error("wrong secret verified")
	}
}

func TestVerify_CorruptDigestIsFalseNotPanic(t *testing.T) {
	h := hash.New()

	for _, digest := range []string{"", "not-a-bcrypt-digest", "$2a$broken"} {
		if h.Verify("anything", digest) {
			t.Errorf("corrupt digest %q verified", digest)
		}
	}
}
