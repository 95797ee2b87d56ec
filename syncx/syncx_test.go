// © 2025 The accelkit Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package syncx

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"testing/synctest"

	"github.com/haneulab/accelkit/testutil"
)

func TestLazy(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		var l Lazy[int]
		var count int
		var mu sync.Mutex

		f := func() int {
			mu.Lock()
			defer mu.Unlock()
			count++
			return count
		}

		v1 := l.Get(f)
		testutil.AssertEqual(t, v1, 1)

		v2 := l.Get(f)
		testutil.AssertEqual(t, v2, 1)

		testutil.AssertEqual(t, count, 1)

		var l2 Lazy[string]

		f2 := func() (string, error) {
			return "", errors.New("something went wrong")
		}

		notnil := func(err error) {
			if err == nil {
				t.Fatalf("err must not be nil")
			}
		}

		ev1, err := l2.GetErr(f2)
		testutil.AssertEqual(t, ev1, "")
		notnil(err)

		ev2, err := l2.GetErr(f2)
		testutil.AssertEqual(t, ev2, "")
		notnil(err)
	})
}

func TestMap(t *testing.T) {
	t.Parallel()

	t.Run("load and store", func(t *testing.T) {
		var m Map[string, int]

		if _, ok := m.Load("missing"); ok {
			t.Fatal("Load of a missing key reported ok")
		}

		m.Store("answer", 42)
		got, ok := m.Load("answer")
		testutil.AssertEqual(t, ok, true)
		testutil.AssertEqual(t, got, 42)
	})

	t.Run("load or store", func(t *testing.T) {
		var m Map[string, int]

		actual, loaded := m.LoadOrStore("answer", 42)
		testutil.AssertEqual(t, loaded, false)
		testutil.AssertEqual(t, actual, 42)

		actual, loaded = m.LoadOrStore("answer", 43)
		testutil.AssertEqual(t, loaded, true)
		testutil.AssertEqual(t, actual, 42)
	})

	t.Run("load and delete", func(t *testing.T) {
		var m Map[string, int]
		m.Store("answer", 42)

		got, loaded := m.LoadAndDelete("answer")
		testutil.AssertEqual(t, loaded, true)
		testutil.AssertEqual(t, got, 42)

		if _, loaded := m.LoadAndDelete("answer"); loaded {
			t.Fatal("LoadAndDelete of a deleted key reported loaded")
		}
	})

	t.Run("delete", func(t *testing.T) {
		var m Map[string, int]
		m.Store("answer", 42)
		m.Delete("answer")
		if _, ok := m.Load("answer"); ok {
			t.Fatal("Load of a deleted key reported ok")
		}
	})

	t.Run("range", func(t *testing.T) {
		var m Map[string, int]
		want := map[string]int{"a": 1, "b": 2, "c": 3}
		for k, v := range want {
			m.Store(k, v)
		}

		got := make(map[string]int)
		m.Range(func(k string, v int) bool {
			got[k] = v
			return true
		})
		testutil.AssertEqual(t, got, want)

		var visited int
		m.Range(func(k string, v int) bool {
			visited++
			return false
		})
		testutil.AssertEqual(t, visited, 1)
	})

	t.Run("all", func(t *testing.T) {
		var m Map[int, string]
		m.Store(1, "one")
		m.Store(2, "two")

		got := make(map[int]string)
		for k, v := range m.All() {
			got[k] = v
		}
		testutil.AssertEqual(t, got, map[int]string{1: "one", 2: "two"})
	})

	t.Run("concurrent stores", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			var m Map[string, int]
			for i := range 100 {
				go m.Store(fmt.Sprintf("key%d", i), i)
			}
			synctest.Wait()

			var count int
			m.Range(func(string, int) bool {
				count++
				return true
			})
			testutil.AssertEqual(t, count, 100)
		})
	})
}
