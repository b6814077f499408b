package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"resume-builder/internal/crop"
	"resume-builder/internal/export"
	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/templates"
)

const localOwner = "local"

var exportFlags struct {
	output     string
	dir        string
	template   string
	customName string
	photo      string
	zoom       float64
}

var exportCmd = &cobra.Command{
	Use:   "export <resume.json>",
	Short: "Render a resume document to PDF",
	Long: `export validates a resume JSON document and renders it with the chosen
template. With --photo the image is cropped at --zoom and embedded as the
profile picture.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFlags.output, "output", "o", "", "output file (default derived from fullName)")
	exportCmd.Flags().StringVar(&exportFlags.dir, "dir", ".", "directory for the derived file name")
	exportCmd.Flags().StringVarP(&exportFlags.template, "template", "t", string(templates.Default), "template id")
	exportCmd.Flags().StringVar(&exportFlags.customName, "custom-name", "", "display name for the custom template")
	exportCmd.Flags().StringVar(&exportFlags.photo, "photo", "", "image to crop into the profile picture")
	exportCmd.Flags().Float64Var(&exportFlags.zoom, "zoom", 1, "zoom applied to --photo")
}

func runExport(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", args[0])
	}
	if err := resumes.ValidateDocument(raw); err != nil {
		return errors.Wrap(err, "resume document rejected")
	}
	var data resumes.Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return errors.Wrap(err, "failed to decode resume document")
	}

	svc := resumes.NewService(resumes.NewMemoryRepo())
	res, err := svc.Create(ctx, localOwner, &data)
	if err != nil {
		return errors.Wrap(err, "failed to load resume")
	}
	if res, err = svc.SetTemplate(ctx, localOwner, res.ID, exportFlags.template, exportFlags.customName); err != nil {
		return errors.Wrap(err, "failed to apply template")
	}

	if exportFlags.photo != "" {
		s, err := loadSession(exportFlags.photo, 1)
		if err != nil {
			return err
		}
		s.SetZoom(exportFlags.zoom)
		img, err := s.Confirm()
		s.Cancel()
		if err != nil {
			return errors.Wrap(err, "failed to crop photo")
		}
		if res, err = svc.SetProfileImage(ctx, localOwner, res.ID, crop.DataURI(img)); err != nil {
			return errors.Wrap(err, "failed to attach photo")
		}
	}

	doc, err := export.RenderPDF(res)
	if err != nil {
		return errors.Wrap(err, "failed to render pdf")
	}

	out := exportFlags.output
	if out == "" {
		out = filepath.Join(exportFlags.dir, export.FileName(res.Data.FullName))
	}
	if err := os.WriteFile(out, doc, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", out)
	}

	telemetry.L().Info("resume exported",
		zap.String("output", out),
		zap.String("template", res.Template),
		zap.Int("bytes", len(doc)),
	)
	return nil
}
