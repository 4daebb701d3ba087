package method

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func BenchmarkMethod(b *testing.B) {
	var parsed Method

	for _, m := range []string{"GET", "get", "POST"} {
		b.Run(m, func(b *testing.B) {
			b.SetBytes(int64(len(m)))
			b.ResetTimer()

			for j := 0; j < b.N; j++ {
				parsed = Parse(m)
			}
		})
	}

	keepalive(parsed)
}

func keepalive(Method) {}

func TestMethod(t *testing.T) {
	for _, str := range []string{"GET", "get", "Get", "gEt"} {
		require.Equal(t, GET, Parse(str), str)
	}

	for _, str := range []string{"", "POST", "HEAD", "GETS", "GE"} {
		require.Equal(t, Unknown, Parse(str), str)
	}

	require.Equal(t, "GET", GET.String())
}
