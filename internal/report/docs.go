package report

// Docs is the model overview printed by show-docs.
const Docs = `GSSEM: a discrete-time socio-economic-ecological simulation

The model advances a closed system one year at a time. Each step reads the
state at year i and writes year i+1.

Compartments
  P1 P2 P3      plants: grain, pasture and forest biomass
  H1 H2 H3      herbivores: livestock and wild grazers
  C1 C2         carnivores
  HH            household biomass, split into two cohorts HH1 and HH2
  IS            industrial system mass
  RP IRP ERP    resource pool, industrial resource pool and energy resource pool
  EE            extracted energy

Each step
  1. Cohort weights and demographic rates, with the temperature modifier on
     household mortality.
  2. Temperature from accumulated CO2-equivalent, and the temperature
     dependent plant growth factors.
  3. Wages, prices and production of the market goods. Without a viable
     household population the natural Lotka-Volterra feeding takes over.
  4. Demand for every good from households and the industrial system.
  5. Raw flows between compartments, then pro-rata rationing of every stock
     that cannot cover its claims. Shortfalls are carried as mass deficits
     and caught up from later surplus.
  6. Settlement of the resource pool, the energy pool and the industrial
     system.
  7. Births, next-year stocks and emissions.

Outputs
  x  flow records, one row per step with 77 named columns
  y  49 named series of length T, shape [1][49][T]

Commands
  run          simulate and store the arrays under the output directory
  plot         draw figures 15 to 20 for a stored run
  browse       page through a stored run's flow records
  show-params  list every parameter and its value
`
