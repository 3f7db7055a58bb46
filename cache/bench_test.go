package cache

import (
	"fmt"
	"testing"
	"time"
)

// BenchmarkMemoryStore_Get_Hit measures hit performance.
func BenchmarkMemoryStore_Get_Hit(b *testing.B) {
	s := NewMemoryStore(ServerPolicy())
	s.Put("key", "value")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.Get("key")
	}
}

// BenchmarkMemoryStore_Get_Miss measures miss performance.
func BenchmarkMemoryStore_Get_Miss(b *testing.B) {
	s := NewMemoryStore(ServerPolicy())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.Get("missing")
	}
}

// BenchmarkMemoryStore_Put measures write performance including the
// eviction path.
func BenchmarkMemoryStore_Put(b *testing.B) {
	s := NewMemoryStore(Policy{
		TTL:             time.Hour,
		MaxEntries:      1000,
		CleanupInterval: time.Hour,
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Put(fmt.Sprintf("key-%d", i), i)
	}
}

// BenchmarkMemoryStore_Put_SameKey measures overwrite performance.
func BenchmarkMemoryStore_Put_SameKey(b *testing.B) {
	s := NewMemoryStore(ServerPolicy())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Put("same-key", i)
	}
}

// BenchmarkMemoryStore_Concurrent_ReadHeavy measures a read-heavy mix.
func BenchmarkMemoryStore_Concurrent_ReadHeavy(b *testing.B) {
	s := NewMemoryStore(ServerPolicy())
	for i := 0; i < 100; i++ {
		s.Put(fmt.Sprintf("key-%d", i), i)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			key := fmt.Sprintf("key-%d", i%100)
			if i%4 == 0 {
				s.Put(key, i)
			} else {
				_, _ = s.Get(key)
			}
			i++
		}
	})
}

// BenchmarkHashKeyer_Key measures key derivation.
func BenchmarkHashKeyer_Key(b *testing.B) {
	keyer := NewHashKeyer()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = keyer.Key("translate", "こんにちは、世界。今日はいい天気ですね。", "ja", "en")
	}
}

// BenchmarkHashKeyer_Key_Concurrent measures concurrent key derivation.
func BenchmarkHashKeyer_Key_Concurrent(b *testing.B) {
	keyer := NewHashKeyer()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = keyer.Key("analyze", "すもももももももものうち")
		}
	})
}
