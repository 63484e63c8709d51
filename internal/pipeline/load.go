package pipeline

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/flowgridgo/internal/ctxlog"
	"github.com/vk/flowgridgo/internal/fsutil"
)

// Load finds and parses all .hcl files under path (a single file or a
// directory tree) into one merged Spec.
func Load(ctx context.Context, path string) (*Spec, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("loading pipeline", "path", path)

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("pipeline: discovering files in %s: %w", path, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("pipeline: no .hcl files found in %s", path)
	}

	parser := hclparse.NewParser()
	spec := &Spec{}
	for _, fp := range files {
		f, diags := parser.ParseHCLFile(fp)
		if diags.HasErrors() {
			return nil, fmt.Errorf("pipeline: parsing %s: %w", fp, diags)
		}
		var parsed hclFile
		if diags := gohcl.DecodeBody(f.Body, nil, &parsed); diags.HasErrors() {
			return nil, fmt.Errorf("pipeline: decoding %s: %w", fp, diags)
		}
		if err := spec.merge(&parsed); err != nil {
			return nil, err
		}
	}
	logger.Debug("pipeline loaded", "files", len(files), "nodes", len(spec.Names()))
	return spec, nil
}

// Parse decodes a single in-memory pipeline definition; filename is used in
// diagnostics only.
func Parse(filename string, src []byte) (*Spec, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("pipeline: parsing %s: %w", filename, diags)
	}
	var parsed hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("pipeline: decoding %s: %w", filename, diags)
	}
	spec := &Spec{}
	if err := spec.merge(&parsed); err != nil {
		return nil, err
	}
	return spec, nil
}
