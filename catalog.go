package almanac

// Option catalogs for the two option namespaces of the adjoint solver
// suite: solver options ("meep_adjoint") and visualization options
// ("meep_visualization"). Applications register these through the
// namespace constructors below and layer their own defaults on top with
// SetDefaults.

// AdjointTemplates returns the adjoint solver option set.
func AdjointTemplates() []Template {
	return []Template{
		// Options affecting FDTD calculations.
		{Name: "res", Default: 20.0, Help: "Yee grid resolution"},
		{Name: "fcen", Default: 0.0, Help: "source center frequency"},
		{Name: "df", Default: 0.0, Help: "source frequency width"},
		{Name: "source_component", Default: "Ez", Help: "forward source component"},
		{Name: "source_mode", Default: 1, Help: "forward source eigenmode index"},
		{Name: "nfreq", Default: 1, Help: "number of DFT frequencies"},
		{Name: "dpml", Default: -1.0, Help: "PML width (-1 --> auto-select)"},
		{Name: "dair", Default: -1.0, Help: "gap width between material bodies and PMLs (-1 --> auto-select)"},
		{Name: "eps_func", Default: "1.0", Help: "function of (x,y,z) giving initial design permittivity"},
		{Name: "dft_reltol", Default: 1.0e-6, Help: "convergence tolerance for terminating timestepping"},
		{Name: "dft_timeout", Default: 10.0, Help: "max runtime in units of last_source_time"},
		{Name: "dft_interval", Default: 0.25, Help: "time between DFT convergence checks in units of last_source_time"},
		{Name: "complex_fields", Default: false, Help: "use complex fields in forward calculation"},

		// Options affecting finite-element basis sets.
		{Name: "element_type", Default: "CG 1", Help: "finite-element family and degree"},
		{Name: "element_length", Default: 0.0, Help: "finite-element discretization length"},

		// Options affecting the gradient-descent optimizer.
		{Name: "alpha", Default: 1.0, Help: "initial value of gradient relaxation parameter"},
		{Name: "alpha_min", Default: 1.0e-3, Help: "minimum value of alpha"},
		{Name: "alpha_max", Default: 10.0, Help: "maximum value of alpha"},
		{Name: "boldness", Default: 1.25, Help: "factor by which alpha grows after a successful step"},
		{Name: "timidity", Default: 0.75, Help: "factor by which alpha shrinks after a rejected step"},
		{Name: "max_iters", Default: 100, Help: "max number of optimization iterations"},

		// Options affecting outputs.
		{Name: "filebase", Default: "", Help: "base name of output files (empty --> autodetermined)"},
		{Name: "verbose", Default: true, Help: "produce more output"},
		{Name: "visualize", Default: true, Help: "produce visualization graphics"},
		{Name: "silence_meep", Default: true, Help: "suppress solver console output"},
	}
}

// VisualizationTemplates returns the section-independent visualization
// option set.
func VisualizationTemplates() []Template {
	return []Template{
		{Name: "cmap", Default: "plasma", Help: "default colormap"},
		{Name: "alpha", Default: 1.0, Help: "default transparency"},
		{Name: "fontsize", Default: 25, Help: "font size for labels and titles"},
		{Name: "method", Default: "contourf 100", Help: "contourf NN | imshow | pcolormesh"},
		{Name: "shading", Default: "gouraud", Help: "shading style"},
		{Name: "linecolor", Default: "#ff0000", Help: "default line color"},
		{Name: "linewidth", Default: 4.0, Help: "default line width"},
		{Name: "linestyle", Default: "-", Help: "default line style"},
		{Name: "fcolor", Default: "#ffffff", Help: "default fill color"},
		{Name: "cmin", Default: 0.0, Help: "colormap minimum (cmin == cmax --> autoscale)"},
		{Name: "cmax", Default: 0.0, Help: "colormap maximum (cmin == cmax --> autoscale)"},
		{Name: "zmin", Default: 0.6, Help: "lower z coordinate of plot region"},
		{Name: "zmax", Default: 0.8, Help: "upper z coordinate of plot region"},
		{Name: "latex", Default: true, Help: "LaTeX text formatting"},
		{Name: "cb_pad", Default: 0.04, Help: "colorbar padding"},
		{Name: "cb_shrink", Default: 0.60, Help: "colorbar shrink factor"},
	}
}

// VisualizationSections lists the plot sectors that accept per-section
// visualization overrides.
func VisualizationSections() []string {
	return []string{"eps", "pml", "src_region", "flux_region", "field_region"}
}

// NewAdjointOptions creates and resolves the adjoint option namespace.
// customDefaults overrides template defaults and args is the process
// argument list (recognized flags are consumed).
func NewAdjointOptions(customDefaults map[string]any, args []string) (*Namespace, error) {
	ns, err := NewNamespace("meep_adjoint", AdjointTemplates())
	if err != nil {
		return nil, err
	}
	ns.SetDefaults(customDefaults)
	if err := ns.Resolve(args); err != nil {
		return ns, err
	}
	return ns, nil
}

// NewVisualizationOptions creates and resolves the visualization option
// namespace with its standard sections.
func NewVisualizationOptions(customDefaults map[string]any, args []string) (*Namespace, error) {
	ns, err := NewSectionedNamespace("meep_visualization", VisualizationTemplates(), VisualizationSections())
	if err != nil {
		return nil, err
	}
	ns.SetDefaults(customDefaults)
	if err := ns.Resolve(args); err != nil {
		return ns, err
	}
	return ns, nil
}
