// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toj

import (
	"io"
	"os"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
)

// Table returns the sequence as an etable.Table with one row per trial:
// the counters, polarity and probe-side flags as 0 / 1, the SOA, one
// string column per free factor, and a composed TrialName.
func (sq *Sequence) Table() *etable.Table {
	sch := etable.Schema{
		{"Trial", etensor.INT64, nil, nil},
		{"Block", etensor.INT64, nil, nil},
		{"TrialInBlock", etensor.INT64, nil, nil},
		{"SeqLen", etensor.INT64, nil, nil},
		{"Rank", etensor.INT64, nil, nil},
		{"Negated", etensor.INT64, nil, nil},
		{"ProbeLeft", etensor.INT64, nil, nil},
		{"SOA", etensor.FLOAT64, nil, nil},
	}
	for _, fc := range sq.Des.Factors {
		sch = append(sch, etable.Column{fc.Name, etensor.STRING, nil, nil})
	}
	sch = append(sch, etable.Column{"TrialName", etensor.STRING, nil, nil})

	dt := &etable.Table{}
	dt.SetMetaData("name", sq.Des.Name)
	dt.SetMetaData("desc", "generated temporal-order judgement trial sequence")
	dt.SetMetaData("read-only", "true")
	dt.SetFromSchema(sch, sq.NTrials())

	for ri, tr := range sq.Trials {
		dt.SetCellFloat("Trial", ri, float64(tr.Index))
		dt.SetCellFloat("Block", ri, float64(tr.Block))
		dt.SetCellFloat("TrialInBlock", ri, float64(tr.IndexInBlock))
		dt.SetCellFloat("SeqLen", ri, float64(tr.SeqLen))
		dt.SetCellFloat("Rank", ri, float64(tr.Rank))
		neg := 0.0
		if tr.Negated {
			neg = 1
		}
		dt.SetCellFloat("Negated", ri, neg)
		lft := 0.0
		if tr.ProbeLeft {
			lft = 1
		}
		dt.SetCellFloat("ProbeLeft", ri, lft)
		dt.SetCellFloat("SOA", ri, tr.SOA)
		for _, fc := range sq.Des.Factors {
			dt.SetCellString(fc.Name, ri, tr.Cond[fc.Name])
		}
		dt.SetCellString("TrialName", ri, tr.String())
	}
	return dt
}

// WriteCSV writes the sequence table in tab-separated form with headers.
func (sq *Sequence) WriteCSV(w io.Writer) error {
	dt := sq.Table()
	if err := dt.WriteCSVHeaders(w, etable.Tab); err != nil {
		return err
	}
	for ri := 0; ri < dt.Rows; ri++ {
		if err := dt.WriteCSVRow(w, ri, etable.Tab); err != nil {
			return err
		}
	}
	return nil
}

// SaveCSV writes the sequence table to the given tab-separated file.
func (sq *Sequence) SaveCSV(fname string) error {
	fp, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer fp.Close()
	return sq.WriteCSV(fp)
}
