// process normalizes featured set folders: it moves loose images into full/,
// refreshes thumbnails and scaffolds each set's meta.json.
package main

import (
	"flag"

	"k8s.io/klog/v2"

	"github.com/alerego/portfolio/pkg/portfolio"
)

var (
	configPath = flag.String("config", "", "path to an optional YAML config file")
	root       = flag.String("root", "", "site root containing the images directory (overrides config)")
	generate   = flag.Bool("generate", true, "regenerate manifests once processing is done")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	c, err := portfolio.LoadConfig(*configPath)
	if err != nil {
		klog.Exitf("config: %v", err)
	}
	if *root != "" {
		c.Root = *root
	}

	t := portfolio.NewThumbnailer(c.Thumbnail)
	defer func() {
		if err := t.Close(); err != nil {
			klog.Errorf("failed to close exiftool: %v", err)
		}
	}()

	rs, err := portfolio.NewProcessor(c, t).Process()
	if err != nil {
		klog.Exitf("featured set processing failed: %v", err)
	}
	klog.Infof("all featured sets processed (%d folders)", len(rs))

	if !*generate {
		return
	}
	if _, err := portfolio.Generate(c); err != nil {
		klog.Exitf("generate: %v", err)
	}
}
