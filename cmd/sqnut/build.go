package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/soypat/sqnut/kernel"
	"github.com/soypat/sqnut/kernel/sdfx"
	"github.com/soypat/sqnut/nut"
	"github.com/soypat/sqnut/render"
	"github.com/soypat/sqnut/thread"
)

const (
	kernelNative = "native"
	kernelSDFX   = "sdfx"
)

// weldTol is the distance below which mesh vertices count as shared.
const weldTol = 1e-6

func newBuilder(a *app, name string) (*nut.Builder, error) {
	switch strings.ToLower(name) {
	case kernelNative:
		return nut.NewBuilder(kernel.Native{}, thread.Maker{}, a.log), nil
	case kernelSDFX:
		return nut.NewBuilder(sdfx.Kernel{}, sdfx.ThreadMaker{}, a.log), nil
	}
	return nil, fmt.Errorf("unknown kernel %q, want %s or %s", name, kernelNative, kernelSDFX)
}

func buildCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate a square nut STL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.build()
		},
	}
	f := cmd.Flags()
	f.StringP(cfgKeyStandard, "s", defaultStandard, "nut standard, DIN557 or DIN562")
	f.String(cfgKeySize, defaultSize, "nominal thread size, i.e. M6")
	f.Bool(cfgKeyThread, true, "cut the internal thread")
	f.String(cfgKeyKernel, kernelNative, "geometry kernel, native or sdfx")
	f.Int(cfgKeyResolution, defaultResolution, "marching cubes along the longest side")
	f.StringP(cfgKeyOutput, "o", "", "STL output path (default <standard>_<size>.stl)")
	f.String(cfgKeyPreview, "", "also write a PNG preview to this path")
	return cmd
}

func (a *app) build() error {
	std, err := nut.ParseStandard(a.cfg.GetString(cfgKeyStandard))
	if err != nil {
		return err
	}
	size := a.cfg.GetString(cfgKeySize)
	b, err := newBuilder(a, a.cfg.GetString(cfgKeyKernel))
	if err != nil {
		return err
	}
	part := nut.Part{Standard: std, Size: size, Thread: a.cfg.GetBool(cfgKeyThread)}
	start := time.Now()
	res, err := b.Build(part)
	if err != nil {
		return fmt.Errorf("build %v %s: %w", std, size, err)
	}
	a.log.Info().Stringer("standard", std).Str("size", size).Stringer("thread", res.Path).
		Int("turns", res.Turns).Dur("elapsed", time.Since(start)).Msg("nut built")

	r, err := render.NewMarchingCubes(res.Solid.SDF, a.cfg.GetInt(cfgKeyResolution))
	if err != nil {
		return err
	}
	model, err := render.RenderAll(r)
	if err != nil {
		return fmt.Errorf("mesh nut: %w", err)
	}
	if open := render.OpenEdges(model, weldTol); len(open) > 0 {
		a.log.Warn().Int("edges", len(open)).Msg("mesh is not watertight")
	}

	output := a.cfg.GetString(cfgKeyOutput)
	if output == "" {
		output = strings.ToLower(fmt.Sprintf("%v_%s.stl", std, strings.ReplaceAll(size, ".", "_")))
	}
	n, err := render.CreateSTL(output, render.NewSliceRenderer(model))
	if err != nil {
		return fmt.Errorf("write STL: %w", err)
	}
	a.log.Info().Str("path", output).Int("triangles", n).Msg("STL written")

	if preview := a.cfg.GetString(cfgKeyPreview); preview != "" {
		fp, err := os.Create(preview)
		if err != nil {
			return err
		}
		err = render.WritePNG(fp, model, render.DefaultView)
		if cerr := fp.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("write preview: %w", err)
		}
		a.log.Info().Str("path", preview).Msg("preview written")
	}
	return nil
}
