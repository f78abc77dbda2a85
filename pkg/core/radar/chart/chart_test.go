package chart

import (
	"sync"
	"testing"

	"github.com/matzehuels/techradar/pkg/radar"
)

func shape(s Scene) [5]int {
	return [5]int{len(s.Rings), len(s.Wedges), len(s.Labels.Quadrants), len(s.Labels.Rings), len(s.Blips)}
}

func TestChartResizeCycle(t *testing.T) {
	d := radar.New([]radar.Entry{
		{Name: "A", Quadrant: "legacy", Ring: "0-6m"},
		{Name: "B", Quadrant: "platforms", Ring: "1-2y"},
		{Name: "C", Quadrant: "legacy", Ring: "3y+"},
	}, nil, nil)

	fresh := Build(InputFrom(d, 800, 600))

	c := New()
	first := c.Redraw(InputFrom(d, 800, 600))
	if first.Idle {
		t.Fatal("first pass idle")
	}

	idle := c.Resize(0, 0)
	if !idle.Idle || len(idle.Blips) != 0 {
		t.Errorf("0x0 pass = idle %v with %d blips, want idle and empty", idle.Idle, len(idle.Blips))
	}

	back := c.Resize(800, 600)
	if back.Idle {
		t.Fatal("resized pass idle")
	}
	if shape(back) != shape(fresh) {
		t.Errorf("resized shape %v, want %v", shape(back), shape(fresh))
	}
	if back.Geometry != fresh.Geometry {
		t.Errorf("resized geometry %+v, want %+v", back.Geometry, fresh.Geometry)
	}
	if back.Labels.Tile != fresh.Labels.Tile {
		t.Errorf("resized tile %+v, want %+v", back.Labels.Tile, fresh.Labels.Tile)
	}

	cur, ok := c.Scene()
	if !ok || cur.ID != back.ID || cur.Pass != 3 {
		t.Errorf("Scene() = pass %d (%v), want pass 3", cur.Pass, ok)
	}
}

func TestChartSceneBeforeFirstPass(t *testing.T) {
	if _, ok := New().Scene(); ok {
		t.Error("Scene() ok before any pass")
	}
}

func TestChartSetDataKeepsViewport(t *testing.T) {
	c := New()
	c.Redraw(Input{Width: 640, Height: 480})
	s := c.SetData(radar.New([]radar.Entry{{Name: "A", Quadrant: "q", Ring: "0-6m"}}, nil, nil))
	if s.Width != 640 || s.Height != 480 || len(s.Blips) != 1 {
		t.Errorf("SetData scene = %vx%v with %d blips", s.Width, s.Height, len(s.Blips))
	}
}

func TestChartLastWriteWins(t *testing.T) {
	c := New()
	d := radar.New([]radar.Entry{{Name: "A", Quadrant: "q", Ring: "0-6m"}}, nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(w float64) {
			defer wg.Done()
			c.Redraw(InputFrom(d, w, 600))
		}(float64(400 + i))
	}
	wg.Wait()

	cur, ok := c.Scene()
	if !ok || cur.Pass != 20 {
		t.Errorf("published pass = %d, want 20", cur.Pass)
	}
}

func TestChartMixedUpdatesKeepLatestDataAndViewport(t *testing.T) {
	one := radar.New([]radar.Entry{{Name: "A", Quadrant: "q", Ring: "0-6m"}}, nil, nil)
	two := radar.New([]radar.Entry{
		{Name: "A", Quadrant: "q", Ring: "0-6m"},
		{Name: "B", Quadrant: "q", Ring: "1-2y"},
	}, nil, nil)

	tests := []struct {
		name    string
		updates []func(*Chart)
		wantW   float64
		wantH   float64
		blips   int
	}{
		{
			"resize then data",
			[]func(*Chart){
				func(c *Chart) { c.Resize(900, 700) },
				func(c *Chart) { c.SetData(two) },
			},
			900, 700, 2,
		},
		{
			"data then resize",
			[]func(*Chart){
				func(c *Chart) { c.SetData(two) },
				func(c *Chart) { c.Resize(900, 700) },
			},
			900, 700, 2,
		},
		{
			"resize to idle then data",
			[]func(*Chart){
				func(c *Chart) { c.Resize(0, 0) },
				func(c *Chart) { c.SetData(two) },
			},
			0, 0, 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.Redraw(InputFrom(one, 400, 300))
			for _, u := range tt.updates {
				u(c)
			}
			cur, _ := c.Scene()
			if cur.Width != tt.wantW || cur.Height != tt.wantH || len(cur.Blips) != tt.blips {
				t.Errorf("scene = %vx%v with %d blips, want %vx%v with %d",
					cur.Width, cur.Height, len(cur.Blips), tt.wantW, tt.wantH, tt.blips)
			}
		})
	}
}

func TestChartConcurrentSetDataAndResize(t *testing.T) {
	one := radar.New([]radar.Entry{{Name: "A", Quadrant: "q", Ring: "0-6m"}}, nil, nil)
	two := radar.New([]radar.Entry{
		{Name: "A", Quadrant: "q", Ring: "0-6m"},
		{Name: "B", Quadrant: "q", Ring: "1-2y"},
	}, nil, nil)

	for i := 0; i < 50; i++ {
		c := New()
		c.Redraw(InputFrom(one, 400, 300))

		var wg sync.WaitGroup
		start := make(chan struct{})
		wg.Add(2)
		go func() {
			defer wg.Done()
			<-start
			c.SetData(two)
		}()
		go func() {
			defer wg.Done()
			<-start
			c.Resize(900, 700)
		}()
		close(start)
		wg.Wait()

		cur, _ := c.Scene()
		if cur.Width != 900 || cur.Height != 700 || len(cur.Blips) != 2 {
			t.Fatalf("run %d: scene = %vx%v with %d blips, want 900x700 with 2",
				i, cur.Width, cur.Height, len(cur.Blips))
		}
	}
}
