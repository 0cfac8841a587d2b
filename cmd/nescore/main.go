// nescore is the host shell: it loads an iNES ROM into the emulator core
// and drives one DoFrame per ebiten update, uploading the framebuffer and
// feeding controller 1 from the keyboard.
package main

import (
	"flag"
	"image"
	"image/png"
	"log"
	"os"

	"github.com/gordonklaus/portaudio"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"

	"github.com/nesbus/nescore/cartridge"
	"github.com/nesbus/nescore/console"
	"github.com/nesbus/nescore/mappers"
)

var (
	romFile   = flag.String("nes_rom", "", "Path to NES ROM to run.")
	dumpFrame = flag.String("dump_frame", "", "Write a 2x PNG of the first frame to this path.")
	audio     = flag.Bool("audio", false, "Open an audio stream fed from the console's sample producer.")
)

const (
	screenW = 256
	screenH = 240

	sampleRate = 44100
)

var keymap = map[ebiten.Key]uint8{
	ebiten.KeyZ:          console.ButtonA,
	ebiten.KeyX:          console.ButtonB,
	ebiten.KeySpace:      console.ButtonSelect,
	ebiten.KeyEnter:      console.ButtonStart,
	ebiten.KeyArrowUp:    console.ButtonUp,
	ebiten.KeyArrowDown:  console.ButtonDown,
	ebiten.KeyArrowLeft:  console.ButtonLeft,
	ebiten.KeyArrowRight: console.ButtonRight,
}

type game struct {
	nes    *console.Console
	pixels []byte
	dumped bool
}

func (g *game) Update() error {
	var mask uint8
	for key, button := range keymap {
		if ebiten.IsKeyPressed(key) {
			mask |= button
		}
	}
	g.nes.ClearController(0)
	g.nes.WriteController(0, mask)

	if err := g.nes.DoFrame(); err != nil {
		return err
	}

	for i, px := range g.nes.Framebuffer() {
		g.pixels[i*4+0] = uint8(px >> 16)
		g.pixels[i*4+1] = uint8(px >> 8)
		g.pixels[i*4+2] = uint8(px)
		g.pixels[i*4+3] = 0xFF
	}

	if *dumpFrame != "" && !g.dumped {
		g.dumped = true
		if err := writePNG(*dumpFrame, g.pixels); err != nil {
			log.Printf("Couldn't dump frame: %v", err)
		}
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.WritePixels(g.pixels)
}

// Layout returns the NES's fixed resolution so ebiten scales the display
// whenever the window size changes.
func (g *game) Layout(w, h int) (int, int) {
	return screenW, screenH
}

// writePNG scales the framebuffer to 2x and encodes it, for debugging
// rendering changes without eyeballing a live window.
func writePNG(path string, pixels []byte) error {
	src := &image.RGBA{
		Pix:    pixels,
		Stride: screenW * 4,
		Rect:   image.Rect(0, 0, screenW, screenH),
	}
	dst := image.NewRGBA(image.Rect(0, 0, screenW*2, screenH*2))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, dst)
}

// startAudio opens a mono output stream that pulls from the console's
// sample producer; until an APU exists that is silence, but the plumbing
// is live.
func startAudio(nes *console.Console) (func(), error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	stream, err := portaudio.OpenDefaultStream(0, 1, sampleRate, 0, func(out []float32) {
		nes.Samples().ReadSamples(out)
	})
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, err
	}
	return func() {
		stream.Stop()
		stream.Close()
		portaudio.Terminate()
	}, nil
}

func main() {
	flag.Parse()

	f, err := os.Open(*romFile)
	if err != nil {
		log.Fatalf("Couldn't open ROM: %v", err)
	}
	cart, err := cartridge.Load(f)
	f.Close()
	if err != nil {
		log.Fatalf("Invalid ROM (supported mappers: %v): %v", mappers.SupportedMappers(), err)
	}

	nes := console.New()
	nes.InsertCartridge(cart)
	nes.Reset()

	if *audio {
		stop, err := startAudio(nes)
		if err != nil {
			log.Fatalf("Couldn't open audio stream: %v", err)
		}
		defer stop()
	}

	ebiten.SetWindowSize(screenW*2, screenH*2)
	ebiten.SetWindowTitle("nescore")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := &game{nes: nes, pixels: make([]byte, screenW*screenH*4)}
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
