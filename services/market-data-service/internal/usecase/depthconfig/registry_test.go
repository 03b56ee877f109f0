package depthconfig

import (
	"fmt"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/muhammadchandra19/marketdepth/pkg/errors"
	"github.com/muhammadchandra19/marketdepth/pkg/logger"
	loggerMock "github.com/muhammadchandra19/marketdepth/pkg/logger/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	_, err := NewRegistry(3, logger.NewNop())
	assert.True(t, errors.ErrorCodeEquals(err, errors.InvalidDepthLevelError))

	r, err := NewRegistry(5, logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 5, r.Default())
	assert.Equal(t, 5, r.Get("unknown"))
}

func TestRegistry_Set(t *testing.T) {
	testCases := []struct {
		name     string
		level    int
		mockFn   func(log *loggerMock.MockInterface)
		assertFn func(t *testing.T, r *Registry, err error)
	}{
		{
			name:  "depth 5",
			level: 5,
			mockFn: func(log *loggerMock.MockInterface) {
				log.EXPECT().Info("depth level changed", gomock.Any()).Times(1)
			},
			assertFn: func(t *testing.T, r *Registry, err error) {
				assert.NoError(t, err)
				assert.Equal(t, 5, r.Get("X"))
				assert.Equal(t, map[string]int{"X": 5}, r.Snapshot())
			},
		},
		{
			name:   "depth 2 rejected",
			level:  2,
			mockFn: func(log *loggerMock.MockInterface) {},
			assertFn: func(t *testing.T, r *Registry, err error) {
				assert.True(t, errors.ErrorCodeEquals(err, errors.InvalidDepthLevelError))
				assert.Equal(t, 1, r.Get("X"))
				assert.Empty(t, r.Snapshot())
			},
		},
		{
			name:   "depth 0 rejected",
			level:  0,
			mockFn: func(log *loggerMock.MockInterface) {},
			assertFn: func(t *testing.T, r *Registry, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			log := loggerMock.NewMockInterface(ctrl)
			tc.mockFn(log)

			r, err := NewRegistry(1, log)
			require.NoError(t, err)

			tc.assertFn(t, r, r.Set("X", tc.level))
		})
	}
}

func TestRegistry_SnapshotIsCopy(t *testing.T) {
	r, _ := NewRegistry(1, logger.NewNop())
	require.NoError(t, r.Set("A", 5))

	snapshot := r.Snapshot()
	snapshot["A"] = 1
	snapshot["B"] = 5

	assert.Equal(t, 5, r.Get("A"))
	assert.Equal(t, 1, r.Get("B"))
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r, _ := NewRegistry(1, logger.NewNop())

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := range 200 {
				level := 1
				if j%2 == 0 {
					level = 5
				}
				_ = r.Set(fmt.Sprintf("I%d", i), level)
			}
		}()
		go func() {
			defer wg.Done()
			for range 200 {
				level := r.Get(fmt.Sprintf("I%d", i))
				assert.Contains(t, []int{1, 5}, level)
			}
		}()
	}
	wg.Wait()
}
