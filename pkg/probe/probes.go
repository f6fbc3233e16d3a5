package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// Outcome resume uma probe bem-sucedida.
type Outcome struct {
	Found   int
	Scanned int32
	HasMore bool
	// Filtered indica que um FilterExpression foi aplicado depois do Limit.
	Filtered bool
}

// Probe é uma leitura independente. run escreve os detalhes em w; o runner
// só os publica quando run não falha.
type Probe struct {
	Name  string
	Title string
	run   func(ctx context.Context, w io.Writer) (Outcome, error)
}

// Probes devolve a bateria fixa, na ordem de execução.
func (r *Runner) Probes() []Probe {
	pc := r.cfg.Probes
	return []Probe{
		{
			Name:  "raw-sample",
			Title: "Raw scan (first item)",
			run:   r.rawSample,
		},
		{
			Name:  "metadata-listing",
			Title: fmt.Sprintf("Scan all %s items (no filters)", pc.MetadataSK),
			run:   r.metadataListing,
		},
		{
			Name:  "location-index",
			Title: fmt.Sprintf("Query with %s (%s)", r.cfg.Table.LocationIndex, AttrLocationKey),
			run:   r.locationIndex,
		},
		{
			Name:  "city-scan",
			Title: fmt.Sprintf("Scan by City (%s)", AttrCity),
			run:   r.cityScan,
		},
		{
			Name:  "city-metadata-scan",
			Title: fmt.Sprintf("Scan by City with %s filter", AttrSortKey),
			run:   r.cityMetadataScan,
		},
	}
}

// rawSample lê um item qualquer, sem filtro, para revelar o formato real.
func (r *Runner) rawSample(ctx context.Context, w io.Writer) (Outcome, error) {
	page, err := r.raw.Scan().Limit(1).ExecPage(ctx)
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{Found: len(page.Items), Scanned: page.ScannedCount, HasMore: page.HasMore()}
	if len(page.Items) == 0 {
		fmt.Fprintln(w, "  No items in table!")
		return out, nil
	}

	b, err := json.MarshalIndent(jsonValue(page.Items[0]), "", "  ")
	if err != nil {
		return Outcome{}, fmt.Errorf("encode raw item: %w", err)
	}
	fmt.Fprintln(w, "Raw item structure:")
	fmt.Fprintln(w, string(b))
	return out, nil
}

// metadataListing lista até ListLimit itens com SK = METADATA.
func (r *Runner) metadataListing(ctx context.Context, w io.Writer) (Outcome, error) {
	page, err := r.records.Scan().
		FilterEqual(AttrSortKey, r.cfg.Probes.MetadataSK).
		Limit(r.cfg.Probes.ListLimit).
		ExecPage(ctx)
	if err != nil {
		return Outcome{}, err
	}

	if len(page.Items) == 0 {
		fmt.Fprintln(w, "  No items returned!")
	}
	for i, item := range page.Items {
		fmt.Fprintf(w, "\nItem %d:\n", i+1)
		printFields(w, item, AttrHashKey, AttrEntityType, AttrName, AttrCity, AttrCountry, AttrLocationKey)
		if !item.LocationKeyConsistent() {
			fmt.Fprintf(w, "  ⚠ %s mismatch: expected %s\n", AttrLocationKey, item.ExpectedGSI1PK())
		}
	}
	return pageOutcome(len(page.Items), page.ScannedCount, page.HasMore()), nil
}

// locationIndex consulta o índice de localização pela chave derivada.
func (r *Runner) locationIndex(ctx context.Context, w io.Writer) (Outcome, error) {
	pc := r.cfg.Probes
	page, err := r.records.Query().
		Index(r.cfg.Table.LocationIndex).
		KeyEqual(AttrLocationKey, LocationKey(pc.City, pc.Country)).
		FilterEqual(AttrEntityType, pc.EntityType).
		Limit(pc.FilterLimit).
		ExecPage(ctx)
	if err != nil {
		return Outcome{}, err
	}

	if len(page.Items) > 0 {
		fmt.Fprintln(w, "\nFirst item:")
		item := page.Items[0]
		printFields(w, item, AttrHashKey, AttrName, AttrLocationKey)
		printAddress(w, item)
	}
	return pageOutcome(len(page.Items), page.ScannedCount, page.HasMore()), nil
}

// cityScan varre a tabela filtrando por tipo e cidade aninhada.
func (r *Runner) cityScan(ctx context.Context, w io.Writer) (Outcome, error) {
	pc := r.cfg.Probes
	page, err := r.records.Scan().
		FilterEqual(AttrEntityType, pc.EntityType).
		FilterEqual(AttrCity, pc.City).
		Limit(pc.FilterLimit).
		ExecPage(ctx)
	if err != nil {
		return Outcome{}, err
	}

	if len(page.Items) == 0 {
		fmt.Fprintln(w, "  No items returned!")
	} else {
		fmt.Fprintln(w, "\nFirst item:")
		item := page.Items[0]
		printFields(w, item, AttrHashKey, AttrSortKey, AttrName, AttrEntityType)
		printAddress(w, item)
		printFields(w, item, AttrLocationKey)
	}
	return pageOutcome(len(page.Items), page.ScannedCount, page.HasMore()), nil
}

// cityMetadataScan repete o cityScan exigindo também SK = METADATA.
func (r *Runner) cityMetadataScan(ctx context.Context, _ io.Writer) (Outcome, error) {
	pc := r.cfg.Probes
	page, err := r.records.Scan().
		FilterEqual(AttrSortKey, pc.MetadataSK).
		FilterEqual(AttrEntityType, pc.EntityType).
		FilterEqual(AttrCity, pc.City).
		Limit(pc.FilterLimit).
		ExecPage(ctx)
	if err != nil {
		return Outcome{}, err
	}
	return pageOutcome(len(page.Items), page.ScannedCount, page.HasMore()), nil
}

func pageOutcome(found int, scanned int32, hasMore bool) Outcome {
	return Outcome{Found: found, Scanned: scanned, HasMore: hasMore, Filtered: true}
}

func printFields(w io.Writer, item Record, paths ...string) {
	for _, p := range paths {
		fmt.Fprintf(w, "  %s: %s\n", p, item.Field(p))
	}
}

// printAddress imprime o Address como foi gravado, com todas as chaves e a
// caixa original.
func printAddress(w io.Writer, item Record) {
	if item.Address == nil {
		fmt.Fprintf(w, "  %s: %s\n", AttrAddress, Absent)
		return
	}
	b, err := json.MarshalIndent(jsonValue(item.Address), "  ", "  ")
	if err != nil {
		fmt.Fprintf(w, "  %s: %v\n", AttrAddress, item.Address)
		return
	}
	fmt.Fprintf(w, "  %s: %s\n", AttrAddress, b)
}
