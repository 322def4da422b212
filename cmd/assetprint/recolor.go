package main

import (
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-tibia-assets/colorize"
)

// recolorHandler runs the colorizer on two image files, such as sprites
// exported by another tool, and prints the result.
func recolorHandler(templatePath, targetPath string, cols colorize.Colors) error {
	if templatePath == "" || targetPath == "" {
		return errors.New("both -recolor_template and -recolor_target are needed")
	}
	tmpl, err := decodeFile(templatePath)
	if err != nil {
		return err
	}
	target, err := decodeFile(targetPath)
	if err != nil {
		return err
	}
	img, err := colorize.RecolorImage(tmpl, target, cols)
	if err != nil {
		return errors.Wrapf(err, "recoloring %s with %s", targetPath, templatePath)
	}
	out(img)
	return nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening image")
	}
	defer f.Close()

	var img image.Image
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		img, err = tga.Decode(f)
	} else {
		img, _, err = image.Decode(f)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	return img, nil
}
