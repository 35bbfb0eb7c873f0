package hexgl

import (
	"sync"
	"testing"
)

func TestIsSentinelAddress(t *testing.T) {
	tests := []struct {
		addr uintptr
		want bool
	}{
		{0, true},
		{1, true},
		{2, true},
		{3, true},
		{^uintptr(0), true},
		{4, false},
		{0x1000_1000, false},
		{^uintptr(0) - 1, false},
	}
	for _, tt := range tests {
		if got := IsSentinelAddress(tt.addr); got != tt.want {
			t.Errorf("IsSentinelAddress(%#x) = %v, want %v", tt.addr, got, tt.want)
		}
	}
}

func TestConcurrentFirstUseResolvesOnce(t *testing.T) {
	fp := newFake()
	ctx := mustCreate(t, fp)

	const goroutines = 16
	err := ctx.Execute(func(f *testFuncs) error {
		var wg sync.WaitGroup
		for range goroutines {
			wg.Add(1)
			go func() {
				defer wg.Done()
				f.Finish()
			}()
		}
		wg.Wait()
		return nil
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if n := fp.ExtensionLookups("glFinish"); n != 1 {
		t.Errorf("glFinish looked up %d times, want 1", n)
	}
	if n := fp.CallCount("glFinish"); n != goroutines {
		t.Errorf("glFinish called %d times, want %d", n, goroutines)
	}
}

func TestProviderPerContext(t *testing.T) {
	fp := newFake()
	a := mustCreate(t, fp)
	b := mustCreate(t, fp)

	for _, ctx := range []*Context[testFuncs]{a, b} {
		if err := ctx.Execute(func(f *testFuncs) error { f.Finish(); return nil }); err != nil {
			t.Fatal(err)
		}
	}
	if n := fp.ExtensionLookups("glFinish"); n != 2 {
		t.Errorf("glFinish looked up %d times, want once per context", n)
	}
}
